package service

import (
	"context"
	"errors"
	"time"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/ledger"
	"attendease/gym-app/internal/projection"
	"attendease/gym-app/internal/store"
)

// --- Error Definitions ---
var (
	ErrClassNotFound   = errors.New("class session not found")
	ErrPackageNotFound = errors.New("credit package not found")
	ErrTraineeNotFound = errors.New("trainee user not found")
)

// SessionView is an open session decorated with the trainee's booking state.
type SessionView struct {
	domain.ClassSession
	Booked    bool `json:"booked"`
	CanCancel bool `json:"canCancel"`
}

// TraineeService drives the trainee dashboard: the open schedule, the credit
// wallet and the activity history.
type TraineeService interface {
	OpenSessions(ctx context.Context, traineeID string) ([]SessionView, error)
	BookClass(ctx context.Context, traineeID, classID string) (*domain.User, error)
	CancelBooking(ctx context.Context, traineeID, classID string) (*domain.User, error)
	Packages(ctx context.Context) ([]domain.CreditPackage, error)
	PurchasePackage(ctx context.Context, traineeID, packageID string) (*domain.User, error)
	ActivityHistory(ctx context.Context, traineeID string) ([]domain.ActivityLog, error)
}

// traineeService implements the TraineeService interface.
type traineeService struct {
	snapshots store.SnapshotStore
	engine    *ledger.Engine
	now       func() time.Time
}

// NewTraineeService creates a new instance of traineeService. A nil clock
// defaults to time.Now.
func NewTraineeService(snapshots store.SnapshotStore, engine *ledger.Engine, now func() time.Time) TraineeService {
	if now == nil {
		now = time.Now
	}
	return &traineeService{
		snapshots: snapshots,
		engine:    engine,
		now:       now,
	}
}

// OpenSessions lists the sessions still open for booking, flagged with the
// trainee's current state for each.
func (s *traineeService) OpenSessions(ctx context.Context, traineeID string) ([]SessionView, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	open := projection.OpenSessions(data, now)
	views := make([]SessionView, len(open))
	for i, c := range open {
		views[i] = SessionView{
			ClassSession: c,
			Booked:       data.ActiveRecord(traineeID, c.ID) != nil,
			CanCancel:    guard.CanCancel(c, now),
		}
	}
	return views, nil
}

// BookClass books a slot for the trainee, consuming one credit.
func (s *traineeService) BookClass(ctx context.Context, traineeID, classID string) (*domain.User, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	class := data.ClassByID(classID)
	if class == nil {
		return nil, ErrClassNotFound
	}
	next, err := s.engine.Book(data, *class, traineeID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return s.saveAndReturn(ctx, next, traineeID)
}

// CancelBooking releases the trainee's slot, refunding the credit, subject to
// the 30-minute rule.
func (s *traineeService) CancelBooking(ctx context.Context, traineeID, classID string) (*domain.User, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	class := data.ClassByID(classID)
	if class == nil {
		return nil, ErrClassNotFound
	}
	next, err := s.engine.Cancel(data, *class, traineeID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return s.saveAndReturn(ctx, next, traineeID)
}

// Packages returns the purchasable credit bundle catalog.
func (s *traineeService) Packages(ctx context.Context) ([]domain.CreditPackage, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Packages, nil
}

// PurchasePackage adds the package's credits to the trainee's wallet.
// Purchases are simulated; there is no payment step to fail.
func (s *traineeService) PurchasePackage(ctx context.Context, traineeID, packageID string) (*domain.User, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	pkg := data.PackageByID(packageID)
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	next, err := s.engine.Purchase(data, *pkg, traineeID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return s.saveAndReturn(ctx, next, traineeID)
}

// ActivityHistory returns the trainee's audit trail, most recent first.
func (s *traineeService) ActivityHistory(ctx context.Context, traineeID string) ([]domain.ActivityLog, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return projection.TraineeHistory(data, traineeID), nil
}

// saveAndReturn persists the snapshot and returns the trainee as saved, so
// callers always see the post-transition balance.
func (s *traineeService) saveAndReturn(ctx context.Context, next *domain.AppData, traineeID string) (*domain.User, error) {
	saved, err := s.snapshots.Save(ctx, next)
	if err != nil {
		return nil, err
	}
	trainee := saved.UserByID(traineeID)
	if trainee == nil {
		return nil, ErrTraineeNotFound
	}
	return trainee, nil
}

// mapLedgerError translates engine errors into service-level ones; guard
// sentinels pass through untouched so handlers can errors.Is on them.
func mapLedgerError(err error) error {
	if errors.Is(err, ledger.ErrTraineeNotFound) {
		return ErrTraineeNotFound
	}
	return err
}
