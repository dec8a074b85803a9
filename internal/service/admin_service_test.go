package service

import (
	"context"
	"errors"
	"testing"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/store"
)

func newAdminFixture() (AdminService, *store.MemoryStore, *guard.IdentityGuard) {
	snapshots := store.NewMemoryStore(fixtureData())
	identity := guard.NewIdentityGuard()
	svc := NewAdminService(snapshots, identity, fixtureClock(fixtureNow), fixtureIDs("user"))
	return svc, snapshots, identity
}

func TestSaveUserCreate(t *testing.T) {
	svc, snapshots, _ := newAdminFixture()

	saved, err := svc.SaveUser(context.Background(), "", UserForm{
		Name: "Carol", Email: "carol@test.com", PhoneNumber: "+6555555555",
		Password: "secret", Role: domain.RoleTrainee, Credits: 3,
	})
	if err != nil {
		t.Fatalf("SaveUser returned error: %v", err)
	}
	if saved.ID == "" || saved.Credits != 3 {
		t.Errorf("saved = %+v", saved)
	}

	data, _ := snapshots.Load(context.Background())
	if len(data.Users) != 5 {
		t.Errorf("persisted users = %d, want 5", len(data.Users))
	}
}

func TestSaveUserValidation(t *testing.T) {
	svc, _, _ := newAdminFixture()

	tests := []struct {
		name    string
		form    UserForm
		wantErr error
	}{
		{"missing name", UserForm{Email: "x@test.com", PhoneNumber: "+65", Role: domain.RoleTrainee}, ErrUserFieldsMissing},
		{"missing email", UserForm{Name: "X", PhoneNumber: "+65", Role: domain.RoleTrainee}, ErrUserFieldsMissing},
		{"missing phone", UserForm{Name: "X", Email: "x@test.com", Role: domain.RoleTrainee}, ErrUserFieldsMissing},
		{"unknown role", UserForm{Name: "X", Email: "x@test.com", PhoneNumber: "+65", Role: "WIZARD"}, ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SaveUser(context.Background(), "", tt.form); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveUserIdentityChange(t *testing.T) {
	svc, snapshots, _ := newAdminFixture()

	form := UserForm{
		Name: "Alice", Email: "alice.new@test.com", PhoneNumber: "+6533333333",
		Password: "pw", Role: domain.RoleTrainee, Credits: 5,
	}

	// First submit with a changed email is intercepted and persists nothing.
	if _, err := svc.SaveUser(context.Background(), "u3", form); !errors.Is(err, guard.ErrIdentityChangePending) {
		t.Fatalf("first submit: err = %v, want ErrIdentityChangePending", err)
	}
	data, _ := snapshots.Load(context.Background())
	if data.UserByID("u3").Email != "alice@test.com" {
		t.Fatal("intercepted submit must not persist")
	}

	// The identical resubmit goes through.
	saved, err := svc.SaveUser(context.Background(), "u3", form)
	if err != nil {
		t.Fatalf("second submit: err = %v", err)
	}
	if saved.Email != "alice.new@test.com" {
		t.Errorf("email = %s, want alice.new@test.com", saved.Email)
	}
	data, _ = snapshots.Load(context.Background())
	if data.UserByID("u3").Email != "alice.new@test.com" {
		t.Error("confirmed change did not persist")
	}
}

func TestSaveUserSameEmailNoConfirmation(t *testing.T) {
	svc, _, _ := newAdminFixture()

	saved, err := svc.SaveUser(context.Background(), "u3", UserForm{
		Name: "Alice Renamed", Email: "alice@test.com", PhoneNumber: "+6533333333",
		Password: "pw", Role: domain.RoleTrainee, Credits: 5,
	})
	if err != nil {
		t.Fatalf("err = %v, want nil for unchanged email", err)
	}
	if saved.Name != "Alice Renamed" {
		t.Errorf("name = %s, want Alice Renamed", saved.Name)
	}
}

func TestDeleteUserKeepsHistory(t *testing.T) {
	svc, snapshots, _ := newAdminFixture()

	// Give the trainee some history first.
	base, _ := snapshots.Load(context.Background())
	base.Attendance = append(base.Attendance, domain.AttendanceRecord{ID: "r1", TraineeID: "u3", ClassID: "c1", Status: domain.StatusBooked, Method: domain.MethodSelf})
	base.ActivityLogs = append(base.ActivityLogs, domain.ActivityLog{ID: "l1", TraineeID: "u3", Type: domain.ActivityBooking})
	if _, err := snapshots.Save(context.Background(), base); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteUser(context.Background(), "u3"); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	data, _ := snapshots.Load(context.Background())
	if data.UserByID("u3") != nil {
		t.Error("user still present after delete")
	}
	if len(data.Attendance) != 1 || len(data.ActivityLogs) != 1 {
		t.Error("history referencing the deleted user must be kept")
	}
}

func TestDeleteUserResetsIdentityPending(t *testing.T) {
	svc, _, identity := newAdminFixture()

	form := UserForm{
		Name: "Alice", Email: "alice.new@test.com", PhoneNumber: "+6533333333",
		Password: "pw", Role: domain.RoleTrainee, Credits: 5,
	}
	if _, err := svc.SaveUser(context.Background(), "u3", form); !errors.Is(err, guard.ErrIdentityChangePending) {
		t.Fatal("expected interception")
	}
	if err := svc.DeleteUser(context.Background(), "u3"); err != nil {
		t.Fatal(err)
	}
	// A fresh user reusing the id must not inherit the pending change.
	if err := identity.Confirm("u3", "alice@test.com", "alice.new@test.com"); !errors.Is(err, guard.ErrIdentityChangePending) {
		t.Errorf("err = %v, want ErrIdentityChangePending after reset", err)
	}
}

func TestSavePackage(t *testing.T) {
	svc, snapshots, _ := newAdminFixture()

	saved, err := svc.SavePackage(context.Background(), "", PackageForm{Name: "Mega Pack", Credits: 50, Price: 600})
	if err != nil {
		t.Fatalf("SavePackage returned error: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated id")
	}

	updated, err := svc.SavePackage(context.Background(), "p1", PackageForm{Name: "Starter Pack", Credits: 12, Price: 180})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Credits != 12 {
		t.Errorf("credits = %d, want 12", updated.Credits)
	}

	data, _ := snapshots.Load(context.Background())
	if len(data.Packages) != 2 {
		t.Errorf("persisted packages = %d, want 2", len(data.Packages))
	}
}

func TestSavePackageValidation(t *testing.T) {
	svc, _, _ := newAdminFixture()

	tests := []struct {
		name string
		form PackageForm
	}{
		{"missing name", PackageForm{Credits: 10, Price: 100}},
		{"negative credits", PackageForm{Name: "X", Credits: -1, Price: 100}},
		{"negative price", PackageForm{Name: "X", Credits: 10, Price: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SavePackage(context.Background(), "", tt.form); !errors.Is(err, ErrInvalidPackage) {
				t.Errorf("err = %v, want ErrInvalidPackage", err)
			}
		})
	}
}

func TestDeletePackage(t *testing.T) {
	svc, snapshots, _ := newAdminFixture()

	if err := svc.DeletePackage(context.Background(), "p1"); err != nil {
		t.Fatalf("DeletePackage returned error: %v", err)
	}
	data, _ := snapshots.Load(context.Background())
	if data.PackageByID("p1") != nil {
		t.Error("package still present after delete")
	}
	if err := svc.DeletePackage(context.Background(), "p1"); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("err = %v, want ErrPackageNotFound", err)
	}
}

func TestAdminStats(t *testing.T) {
	svc, snapshots, _ := newAdminFixture()

	base, _ := snapshots.Load(context.Background())
	base.ActivityLogs = append(base.ActivityLogs,
		domain.ActivityLog{ID: "l1", TraineeID: "u3", Type: domain.ActivityPurchase, Amount: 180},
		domain.ActivityLog{ID: "l2", TraineeID: "u3", Type: domain.ActivityBooking},
	)
	base.Attendance = append(base.Attendance, domain.AttendanceRecord{ID: "r1", TraineeID: "u3", ClassID: "c1", Status: domain.StatusBooked, Method: domain.MethodSelf})
	if _, err := snapshots.Save(context.Background(), base); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Trainees != 2 {
		t.Errorf("trainees = %d, want 2", stats.Trainees)
	}
	if stats.CheckIns != 1 {
		t.Errorf("check-ins = %d, want 1", stats.CheckIns)
	}
	if stats.Revenue != 180 {
		t.Errorf("revenue = %v, want 180", stats.Revenue)
	}
	// The fixture clock is not on a class date.
	if stats.SessionsToday != 0 {
		t.Errorf("sessions today = %d, want 0", stats.SessionsToday)
	}
}

func TestActivityFeedOrder(t *testing.T) {
	svc, snapshots, _ := newAdminFixture()

	base, _ := snapshots.Load(context.Background())
	base.ActivityLogs = append(base.ActivityLogs,
		domain.ActivityLog{ID: "l1", TraineeID: "u3", Type: domain.ActivityPurchase},
		domain.ActivityLog{ID: "l2", TraineeID: "u4", Type: domain.ActivityBooking},
	)
	if _, err := snapshots.Save(context.Background(), base); err != nil {
		t.Fatal(err)
	}

	feed, err := svc.ActivityFeed(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 2 || feed[0].ID != "l2" || feed[1].ID != "l1" {
		t.Errorf("feed order = %+v, want most recent first", feed)
	}
}
