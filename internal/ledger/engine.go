package ledger

import (
	"errors"
	"time"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrTraineeNotFound = errors.New("trainee not found in dataset")
)

// Engine computes the next dataset snapshot for each credit-affecting action.
// Operations never mutate the snapshot they are given: they either return a
// freshly built snapshot with all writes applied, or an error and no snapshot.
// The guards in the guard package are the only thing keeping a trainee's
// balance non-negative; no operation clamps.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// NewEngine creates an engine. A nil clock defaults to time.Now and a nil id
// generator to uuid.NewString; tests inject deterministic versions of both.
func NewEngine(now func() time.Time, newID func() string) *Engine {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Engine{now: now, newID: newID}
}

// Book consumes one credit and records the trainee's slot in the session.
// Booking a session the trainee already holds is a no-op returning the input
// snapshot unchanged, so a stale UI can never double-charge.
func (e *Engine) Book(data *domain.AppData, session domain.ClassSession, traineeID string) (*domain.AppData, error) {
	trainee := data.UserByID(traineeID)
	if trainee == nil {
		return nil, ErrTraineeNotFound
	}
	if data.ActiveRecord(traineeID, session.ID) != nil {
		return data, nil
	}
	if err := guard.CheckCredits(trainee); err != nil {
		return nil, err
	}

	now := e.now()
	next := data.Clone()
	next.UserByID(traineeID).Credits--
	next.Attendance = append(next.Attendance, domain.AttendanceRecord{
		ID:        e.newID(),
		TraineeID: traineeID,
		ClassID:   session.ID,
		Status:    domain.StatusBooked,
		Method:    domain.MethodSelf,
		Timestamp: now.UnixMilli(),
	})
	next.ActivityLogs = append(next.ActivityLogs, e.sessionLog(trainee, session, domain.MethodSelf, domain.ActivityBooking, now))
	return next, nil
}

// Cancel releases the trainee's slot and refunds the credit. It fails while
// the session starts within the cancellation window, and is a silent no-op
// when the trainee holds no slot.
func (e *Engine) Cancel(data *domain.AppData, session domain.ClassSession, traineeID string) (*domain.AppData, error) {
	trainee := data.UserByID(traineeID)
	if trainee == nil {
		return nil, ErrTraineeNotFound
	}
	if err := guard.CheckCancellation(session, e.now()); err != nil {
		return nil, err
	}
	rec := data.ActiveRecord(traineeID, session.ID)
	if rec == nil {
		return data, nil
	}

	now := e.now()
	next := data.Clone()
	next.UserByID(traineeID).Credits++
	next.Attendance = removeRecord(next.Attendance, rec.ID)
	next.ActivityLogs = append(next.ActivityLogs, e.sessionLog(trainee, session, domain.MethodSelf, domain.ActivityCancellation, now))
	return next, nil
}

// MarkAttendance is the staff toggle. With a slot held it acts as an undo:
// the record is removed and the credit refunded. Without one it charges a
// credit and marks the trainee present. Staff marking ignores the 30-minute
// cancellation window.
func (e *Engine) MarkAttendance(data *domain.AppData, session domain.ClassSession, traineeID string) (*domain.AppData, error) {
	trainee := data.UserByID(traineeID)
	if trainee == nil {
		return nil, ErrTraineeNotFound
	}
	now := e.now()

	if rec := data.ActiveRecord(traineeID, session.ID); rec != nil {
		next := data.Clone()
		next.UserByID(traineeID).Credits++
		next.Attendance = removeRecord(next.Attendance, rec.ID)
		next.ActivityLogs = append(next.ActivityLogs, e.sessionLog(trainee, session, domain.MethodStaff, domain.ActivityRefund, now))
		return next, nil
	}

	if err := guard.CheckCredits(trainee); err != nil {
		return nil, err
	}
	next := data.Clone()
	next.UserByID(traineeID).Credits--
	next.Attendance = append(next.Attendance, domain.AttendanceRecord{
		ID:        e.newID(),
		TraineeID: traineeID,
		ClassID:   session.ID,
		Status:    domain.StatusAttended,
		Method:    domain.MethodStaff,
		Timestamp: now.UnixMilli(),
	})
	next.ActivityLogs = append(next.ActivityLogs, e.sessionLog(trainee, session, domain.MethodStaff, domain.ActivityAttendance, now))
	return next, nil
}

// Purchase adds the package's credits to the trainee's balance and records the
// purchase. It has no failure mode beyond the trainee existing.
func (e *Engine) Purchase(data *domain.AppData, pkg domain.CreditPackage, traineeID string) (*domain.AppData, error) {
	trainee := data.UserByID(traineeID)
	if trainee == nil {
		return nil, ErrTraineeNotFound
	}

	now := e.now()
	next := data.Clone()
	next.UserByID(traineeID).Credits += pkg.Credits
	next.ActivityLogs = append(next.ActivityLogs, domain.ActivityLog{
		ID:          e.newID(),
		TraineeID:   trainee.ID,
		TraineeName: trainee.Name,
		ClassName:   "Package: " + pkg.Name,
		Location:    "Online Store",
		Date:        now.Format(domain.DateLayout),
		Time:        now.Format(domain.TimeLayout),
		Method:      domain.MethodSelf,
		Type:        domain.ActivityPurchase,
		Timestamp:   now.UnixMilli(),
		Amount:      pkg.Price,
	})
	return next, nil
}

// sessionLog builds an audit entry with the trainee and session fields
// denormalized as of the event instant.
func (e *Engine) sessionLog(trainee *domain.User, session domain.ClassSession, method domain.AttendanceMethod, typ domain.ActivityType, now time.Time) domain.ActivityLog {
	return domain.ActivityLog{
		ID:          e.newID(),
		TraineeID:   trainee.ID,
		TraineeName: trainee.Name,
		ClassName:   session.Name,
		Location:    session.Location,
		Date:        session.Date,
		Time:        session.Time,
		Method:      method,
		Type:        typ,
		Timestamp:   now.UnixMilli(),
	}
}

func removeRecord(records []domain.AttendanceRecord, id string) []domain.AttendanceRecord {
	out := records[:0]
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
