package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/projection"
	"attendease/gym-app/internal/store"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrUserFieldsMissing = errors.New("name, email and phone are required")
	ErrInvalidPackage    = errors.New("invalid package details")
	ErrInvalidRole       = errors.New("unknown user role")
)

// UserForm carries the editable fields of a user record.
type UserForm struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Role        domain.Role
	Credits     int
}

// PackageForm carries the editable fields of a credit package.
type PackageForm struct {
	Name    string
	Credits int
	Price   float64
}

// AdminService covers the admin-only surfaces: the user registry, the package
// catalog, the aggregate stats and the global activity feed.
type AdminService interface {
	Stats(ctx context.Context) (projection.Stats, error)
	ActivityFeed(ctx context.Context) ([]domain.ActivityLog, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SaveUser(ctx context.Context, userID string, form UserForm) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	ListPackages(ctx context.Context) ([]domain.CreditPackage, error)
	SavePackage(ctx context.Context, packageID string, form PackageForm) (*domain.CreditPackage, error)
	DeletePackage(ctx context.Context, packageID string) error
	GeneratePassword() string
}

// adminService implements the AdminService interface.
type adminService struct {
	snapshots store.SnapshotStore
	identity  *guard.IdentityGuard
	now       func() time.Time
	newID     func() string
}

// NewAdminService creates a new instance of adminService. Nil clock and id
// generator default to time.Now and uuid.NewString.
func NewAdminService(snapshots store.SnapshotStore, identity *guard.IdentityGuard, now func() time.Time, newID func() string) AdminService {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &adminService{
		snapshots: snapshots,
		identity:  identity,
		now:       now,
		newID:     newID,
	}
}

// Stats computes the admin dashboard aggregates.
func (s *adminService) Stats(ctx context.Context) (projection.Stats, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return projection.Stats{}, err
	}
	return projection.ComputeStats(data, s.now()), nil
}

// ActivityFeed returns every audit entry, most recent first.
func (s *adminService) ActivityFeed(ctx context.Context) ([]domain.ActivityLog, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return projection.GlobalFeed(data), nil
}

// ListUsers returns the full user registry.
func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Users, nil
}

// SaveUser creates a user (empty userID) or updates an existing one. Editing
// a user's email is subject to the identity-change double confirmation: the
// first differing submit is intercepted and nothing persists.
func (s *adminService) SaveUser(ctx context.Context, userID string, form UserForm) (*domain.User, error) {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" || strings.TrimSpace(form.PhoneNumber) == "" {
		return nil, ErrUserFieldsMissing
	}
	switch form.Role {
	case domain.RoleAdmin, domain.RoleTrainer, domain.RoleTrainee:
	default:
		return nil, ErrInvalidRole
	}

	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	next := data.Clone()
	var saved domain.User
	if userID == "" {
		saved = domain.User{
			ID:          s.newID(),
			Email:       form.Email,
			Name:        form.Name,
			Role:        form.Role,
			PhoneNumber: form.PhoneNumber,
			Password:    form.Password,
			Credits:     form.Credits,
		}
		next.Users = append(next.Users, saved)
	} else {
		user := next.UserByID(userID)
		if user == nil {
			return nil, ErrUserNotFound
		}
		if err := s.identity.Confirm(userID, user.Email, form.Email); err != nil {
			return nil, err
		}
		user.Name = form.Name
		user.Email = form.Email
		user.PhoneNumber = form.PhoneNumber
		user.Password = form.Password
		user.Role = form.Role
		user.Credits = form.Credits
		saved = *user
	}

	if _, err := s.snapshots.Save(ctx, next); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteUser removes a user. Their attendance records and activity logs are kept;
// dangling references resolve to defaults in the projections.
func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if data.UserByID(userID) == nil {
		return ErrUserNotFound
	}

	next := data.Clone()
	kept := next.Users[:0]
	for _, u := range next.Users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	next.Users = kept
	s.identity.Reset(userID)

	_, err = s.snapshots.Save(ctx, next)
	return err
}

// ListPackages returns the credit package catalog.
func (s *adminService) ListPackages(ctx context.Context) ([]domain.CreditPackage, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Packages, nil
}

// SavePackage creates a package (empty packageID) or updates an existing one.
func (s *adminService) SavePackage(ctx context.Context, packageID string, form PackageForm) (*domain.CreditPackage, error) {
	if strings.TrimSpace(form.Name) == "" || form.Credits < 0 || form.Price < 0 {
		return nil, ErrInvalidPackage
	}

	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	next := data.Clone()
	var saved domain.CreditPackage
	if packageID == "" {
		saved = domain.CreditPackage{
			ID:      s.newID(),
			Name:    form.Name,
			Credits: form.Credits,
			Price:   form.Price,
		}
		next.Packages = append(next.Packages, saved)
	} else {
		pkg := next.PackageByID(packageID)
		if pkg == nil {
			return nil, ErrPackageNotFound
		}
		pkg.Name = form.Name
		pkg.Credits = form.Credits
		pkg.Price = form.Price
		saved = *pkg
	}

	if _, err := s.snapshots.Save(ctx, next); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeletePackage removes a package from the catalog.
func (s *adminService) DeletePackage(ctx context.Context, packageID string) error {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if data.PackageByID(packageID) == nil {
		return ErrPackageNotFound
	}

	next := data.Clone()
	kept := next.Packages[:0]
	for _, p := range next.Packages {
		if p.ID != packageID {
			kept = append(kept, p)
		}
	}
	next.Packages = kept

	_, err = s.snapshots.Save(ctx, next)
	return err
}

// GeneratePassword returns a fresh random credential for the admin
// user-creation form.
func (s *adminService) GeneratePassword() string {
	return GenerateRandomPassword()
}
