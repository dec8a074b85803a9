package service

import (
	"context"
	"errors"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/ledger"
	"attendease/gym-app/internal/projection"
	"attendease/gym-app/internal/store"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNotStaff          = errors.New("user is not an admin or trainer")
	ErrNotTrainee        = errors.New("user is not a trainee")
	ErrClassAccessDenied = errors.New("only the creator may modify this class")
)

// ClassForm carries the editable fields of a class session.
type ClassForm struct {
	Name      string
	Date      string
	Time      string
	Location  string
	TrainerID string
}

// ClassView decorates a session with its authorship badge and whether the
// acting user may edit it.
type ClassView struct {
	domain.ClassSession
	CreatorRole domain.Role `json:"creatorRole"`
	Editable    bool        `json:"editable"`
}

// RosterEntry is one trainee row in the attendance roster.
type RosterEntry struct {
	Trainee domain.User `json:"trainee"`
	Present bool        `json:"present"`
}

// StaffService covers what admins and trainers share: the class schedule and
// the attendance roster. Admins act on any class; trainers only on classes
// they created.
type StaffService interface {
	ClassesFor(ctx context.Context, actorID string) ([]ClassView, error)
	SaveClass(ctx context.Context, actorID, classID string, form ClassForm) (*domain.ClassSession, error)
	DeleteClass(ctx context.Context, actorID, classID string) error
	Roster(ctx context.Context, classID string) ([]RosterEntry, error)
	ToggleAttendance(ctx context.Context, actorID, classID, traineeID string) (bool, *domain.User, error)
}

// staffService implements the StaffService interface.
type staffService struct {
	snapshots store.SnapshotStore
	engine    *ledger.Engine
	newID     func() string
}

// NewStaffService creates a new instance of staffService. A nil id generator
// defaults to uuid.NewString.
func NewStaffService(snapshots store.SnapshotStore, engine *ledger.Engine, newID func() string) StaffService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &staffService{
		snapshots: snapshots,
		engine:    engine,
		newID:     newID,
	}
}

// ClassesFor lists the schedule visible to the actor: every class for admins,
// taught-or-created classes for trainers.
func (s *staffService) ClassesFor(ctx context.Context, actorID string) ([]ClassView, error) {
	data, actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	views := make([]ClassView, 0, len(data.Classes))
	for _, c := range data.Classes {
		if actor.IsTrainer() && c.TrainerID != actorID && c.CreatorID != actorID {
			continue
		}
		views = append(views, ClassView{
			ClassSession: c,
			CreatorRole:  projection.CreatorRole(data, c.CreatorID),
			Editable:     actor.IsAdmin() || c.CreatorID == actorID,
		})
	}
	return views, nil
}

// SaveClass creates a session (empty classID) or updates an existing one.
// The duplicate-session guard runs before the mandatory-field guard.
func (s *staffService) SaveClass(ctx context.Context, actorID, classID string, form ClassForm) (*domain.ClassSession, error) {
	data, actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// Trainers always schedule themselves.
	if actor.IsTrainer() {
		form.TrainerID = actorID
	}

	if err := guard.CheckSessionForm(data.Classes, form.Name, form.Date, form.Time, form.Location, classID); err != nil {
		return nil, err
	}

	next := data.Clone()
	var saved domain.ClassSession
	if classID == "" {
		saved = domain.ClassSession{
			ID:        s.newID(),
			Name:      form.Name,
			Date:      form.Date,
			Time:      form.Time,
			Location:  form.Location,
			TrainerID: form.TrainerID,
			CreatorID: actorID,
		}
		next.Classes = append(next.Classes, saved)
	} else {
		class := next.ClassByID(classID)
		if class == nil {
			return nil, ErrClassNotFound
		}
		if !actor.IsAdmin() && class.CreatorID != actorID {
			return nil, ErrClassAccessDenied
		}
		class.Name = form.Name
		class.Date = form.Date
		class.Time = form.Time
		class.Location = form.Location
		class.TrainerID = form.TrainerID
		saved = *class
	}

	if _, err := s.snapshots.Save(ctx, next); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteClass removes a session from the schedule. Attendance records and
// logs that reference it are left in place; projections tolerate the orphans.
func (s *staffService) DeleteClass(ctx context.Context, actorID, classID string) error {
	data, actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}
	class := data.ClassByID(classID)
	if class == nil {
		return ErrClassNotFound
	}
	if !actor.IsAdmin() && class.CreatorID != actorID {
		return ErrClassAccessDenied
	}

	next := data.Clone()
	kept := next.Classes[:0]
	for _, c := range next.Classes {
		if c.ID != classID {
			kept = append(kept, c)
		}
	}
	next.Classes = kept

	_, err = s.snapshots.Save(ctx, next)
	return err
}

// Roster lists every trainee with their present/absent state for the class.
func (s *staffService) Roster(ctx context.Context, classID string) ([]RosterEntry, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	if data.ClassByID(classID) == nil {
		return nil, ErrClassNotFound
	}

	var entries []RosterEntry
	for _, u := range data.Users {
		if u.Role != domain.RoleTrainee {
			continue
		}
		entries = append(entries, RosterEntry{
			Trainee: u,
			Present: data.ActiveRecord(u.ID, classID) != nil,
		})
	}
	return entries, nil
}

// ToggleAttendance flips the trainee's presence in the class via the ledger's
// staff toggle. It returns the resulting presence and the trainee's balance.
func (s *staffService) ToggleAttendance(ctx context.Context, actorID, classID, traineeID string) (bool, *domain.User, error) {
	data, _, err := s.loadActor(ctx, actorID)
	if err != nil {
		return false, nil, err
	}
	class := data.ClassByID(classID)
	if class == nil {
		return false, nil, ErrClassNotFound
	}
	trainee := data.UserByID(traineeID)
	if trainee == nil {
		return false, nil, ErrTraineeNotFound
	}
	if !trainee.IsTrainee() {
		return false, nil, ErrNotTrainee
	}

	next, err := s.engine.MarkAttendance(data, *class, traineeID)
	if err != nil {
		return false, nil, mapLedgerError(err)
	}
	saved, err := s.snapshots.Save(ctx, next)
	if err != nil {
		return false, nil, err
	}
	return saved.ActiveRecord(traineeID, classID) != nil, saved.UserByID(traineeID), nil
}

// loadActor fetches the snapshot and verifies the actor is staff.
func (s *staffService) loadActor(ctx context.Context, actorID string) (*domain.AppData, *domain.User, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	actor := data.UserByID(actorID)
	if actor == nil {
		return nil, nil, ErrUserNotFound
	}
	if !actor.IsStaff() {
		return nil, nil, ErrNotStaff
	}
	return data, actor, nil
}
