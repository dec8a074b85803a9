package projection

import (
	"time"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"
)

// Read-only views over a snapshot. Nothing here caches: the whole snapshot is
// replaced atomically on every write, so each render recomputes from scratch.

// Stats is the admin dashboard aggregate.
type Stats struct {
	Trainees      int     `json:"trainees"`
	SessionsToday int     `json:"sessionsToday"`
	CheckIns      int     `json:"checkIns"`
	Revenue       float64 `json:"revenue"`
}

// OpenSessions returns sessions whose start plus the cancellation window is
// still in the future, in stored order.
func OpenSessions(data *domain.AppData, now time.Time) []domain.ClassSession {
	out := make([]domain.ClassSession, 0, len(data.Classes))
	for _, c := range data.Classes {
		start, err := c.StartsAt()
		if err != nil {
			continue
		}
		if start.Add(guard.CancellationWindow).After(now) {
			out = append(out, c)
		}
	}
	return out
}

// TraineeHistory returns the trainee's activity logs, most recent first.
func TraineeHistory(data *domain.AppData, traineeID string) []domain.ActivityLog {
	var out []domain.ActivityLog
	for i := len(data.ActivityLogs) - 1; i >= 0; i-- {
		if data.ActivityLogs[i].TraineeID == traineeID {
			out = append(out, data.ActivityLogs[i])
		}
	}
	return out
}

// GlobalFeed returns every activity log, most recent first.
func GlobalFeed(data *domain.AppData) []domain.ActivityLog {
	out := make([]domain.ActivityLog, len(data.ActivityLogs))
	for i, l := range data.ActivityLogs {
		out[len(data.ActivityLogs)-1-i] = l
	}
	return out
}

// ComputeStats derives the admin aggregates from the snapshot.
func ComputeStats(data *domain.AppData, now time.Time) Stats {
	s := Stats{CheckIns: len(data.Attendance)}
	today := now.Format(domain.DateLayout)
	for _, u := range data.Users {
		if u.Role == domain.RoleTrainee {
			s.Trainees++
		}
	}
	for _, c := range data.Classes {
		if c.Date == today {
			s.SessionsToday++
		}
	}
	for _, l := range data.ActivityLogs {
		if l.Type == domain.ActivityPurchase {
			s.Revenue += l.Amount
		}
	}
	return s
}

// CreatorRole resolves a session's creator to that user's current role.
// Orphaned creators (deleted users) resolve to ADMIN.
func CreatorRole(data *domain.AppData, creatorID string) domain.Role {
	if creator := data.UserByID(creatorID); creator != nil {
		return creator.Role
	}
	return domain.RoleAdmin
}
