package guard

import (
	"errors"
	"strings"
	"time"

	"attendease/gym-app/internal/domain"
)

// --- Error Definitions ---
var (
	ErrDuplicateSession    = errors.New("a session with the same name, date and time already exists")
	ErrValidationFailed    = errors.New("all session fields are mandatory")
	ErrCancellationLocked  = errors.New("cancellation locked: session starts within 30 minutes")
	ErrInsufficientCredits = errors.New("insufficient credits: trainee must top up")
)

// CancellationWindow is how long before a session's start self-cancellation
// stays open. The comparison is strict: at exactly 30 minutes out the
// cancellation is already locked.
const CancellationWindow = 30 * time.Minute

// CheckSessionForm validates a candidate session against the current schedule.
// The duplicate check runs before the mandatory-field check; excludeID skips
// the session being edited so saving a session over itself is not a duplicate.
func CheckSessionForm(classes []domain.ClassSession, name, date, timeOfDay, location, excludeID string) error {
	norm := strings.ToLower(strings.TrimSpace(name))
	for _, c := range classes {
		if c.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(c.Name)) == norm && c.Date == date && c.Time == timeOfDay {
			return ErrDuplicateSession
		}
	}
	if strings.TrimSpace(name) == "" || date == "" || timeOfDay == "" || strings.TrimSpace(location) == "" {
		return ErrValidationFailed
	}
	return nil
}

// CanCancel reports whether the session's start is still more than
// CancellationWindow in the future. Sessions with an unparseable start
// are treated as locked.
func CanCancel(session domain.ClassSession, now time.Time) bool {
	start, err := session.StartsAt()
	if err != nil {
		return false
	}
	return start.Sub(now) > CancellationWindow
}

// CheckCancellation returns ErrCancellationLocked when CanCancel fails.
func CheckCancellation(session domain.ClassSession, now time.Time) error {
	if !CanCancel(session, now) {
		return ErrCancellationLocked
	}
	return nil
}

// CheckCredits vetoes credit-consuming actions for a trainee with no balance.
func CheckCredits(trainee *domain.User) error {
	if trainee.Credits <= 0 {
		return ErrInsufficientCredits
	}
	return nil
}
