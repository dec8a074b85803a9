package projection

import (
	"testing"
	"time"

	"attendease/gym-app/internal/domain"
)

func projectionFixture() *domain.AppData {
	return &domain.AppData{
		Users: []domain.User{
			{ID: "u1", Name: "System Admin", Role: domain.RoleAdmin},
			{ID: "u2", Name: "John Trainer", Role: domain.RoleTrainer},
			{ID: "u3", Name: "Alice", Role: domain.RoleTrainee, Credits: 5},
			{ID: "u4", Name: "Bob", Role: domain.RoleTrainee, Credits: 2},
		},
		Classes: []domain.ClassSession{
			{ID: "c1", Name: "Morning Yoga", Date: "2025-05-20", Time: "08:00", Location: "Studio A", CreatorID: "u1"},
			{ID: "c2", Name: "HIIT Intensive", Date: "2025-05-21", Time: "18:30", Location: "Main Gym", CreatorID: "u2"},
			{ID: "c3", Name: "Old Spin", Date: "2025-05-10", Time: "07:00", Location: "Spin Room", CreatorID: "gone"},
		},
		Attendance: []domain.AttendanceRecord{
			{ID: "r1", TraineeID: "u3", ClassID: "c1", Status: domain.StatusBooked, Method: domain.MethodSelf},
			{ID: "r2", TraineeID: "u4", ClassID: "c2", Status: domain.StatusAttended, Method: domain.MethodStaff},
		},
		ActivityLogs: []domain.ActivityLog{
			{ID: "l1", TraineeID: "u3", Type: domain.ActivityPurchase, Amount: 180},
			{ID: "l2", TraineeID: "u3", Type: domain.ActivityBooking},
			{ID: "l3", TraineeID: "u4", Type: domain.ActivityAttendance},
			{ID: "l4", TraineeID: "u3", Type: domain.ActivityCancellation},
			{ID: "l5", TraineeID: "u4", Type: domain.ActivityPurchase, Amount: 30},
		},
	}
}

func TestOpenSessions(t *testing.T) {
	data := projectionFixture()

	tests := []struct {
		name    string
		now     time.Time
		wantIDs []string
	}{
		{
			"all upcoming",
			time.Date(2025, 5, 1, 12, 0, 0, 0, time.Local),
			[]string{"c1", "c2", "c3"},
		},
		{
			"recently started still listed",
			// c1 started 10 minutes ago; its 30-minute grace has not elapsed.
			time.Date(2025, 5, 20, 8, 10, 0, 0, time.Local),
			[]string{"c1", "c2"},
		},
		{
			"grace elapsed",
			time.Date(2025, 5, 20, 8, 30, 0, 1, time.Local),
			[]string{"c2"},
		},
		{
			"all past",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OpenSessions(data, tt.now)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d sessions, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("session[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestOpenSessionsSkipsUnparseable(t *testing.T) {
	data := &domain.AppData{
		Classes: []domain.ClassSession{
			{ID: "bad", Name: "Broken", Date: "someday", Time: "08:00"},
			{ID: "ok", Name: "Fine", Date: "2025-05-20", Time: "08:00"},
		},
	}
	got := OpenSessions(data, time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local))
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("got %+v, want only the parseable session", got)
	}
}

func TestTraineeHistory(t *testing.T) {
	data := projectionFixture()

	got := TraineeHistory(data, "u3")
	wantIDs := []string{"l4", "l2", "l1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d logs, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("log[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestTraineeHistoryEmpty(t *testing.T) {
	if got := TraineeHistory(projectionFixture(), "nobody"); len(got) != 0 {
		t.Errorf("got %d logs, want 0", len(got))
	}
}

func TestGlobalFeed(t *testing.T) {
	got := GlobalFeed(projectionFixture())
	wantIDs := []string{"l5", "l4", "l3", "l2", "l1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d logs, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("log[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestComputeStats(t *testing.T) {
	data := projectionFixture()
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.Local)

	got := ComputeStats(data, now)
	want := Stats{Trainees: 2, SessionsToday: 1, CheckIns: 2, Revenue: 210}
	if got != want {
		t.Errorf("ComputeStats() = %+v, want %+v", got, want)
	}
}

func TestCreatorRole(t *testing.T) {
	data := projectionFixture()

	tests := []struct {
		creatorID string
		want      domain.Role
	}{
		{"u1", domain.RoleAdmin},
		{"u2", domain.RoleTrainer},
		{"gone", domain.RoleAdmin}, // orphaned creator defaults to admin
	}
	for _, tt := range tests {
		if got := CreatorRole(data, tt.creatorID); got != tt.want {
			t.Errorf("CreatorRole(%q) = %s, want %s", tt.creatorID, got, tt.want)
		}
	}
}
