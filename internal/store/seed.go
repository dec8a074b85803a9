package store

import "attendease/gym-app/internal/domain"

// SeedData is the dataset installed on first load, when no snapshot exists
// yet. It gives each role one account to log in with and a starter catalog.
func SeedData() *domain.AppData {
	return &domain.AppData{
		Users: []domain.User{
			{ID: "u1", Email: "admin@test.com", Name: "System Admin", Role: domain.RoleAdmin, PhoneNumber: "+6597638361", Password: "password123"},
			{ID: "u2", Email: "trainer@test.com", Name: "John Trainer", Role: domain.RoleTrainer, PhoneNumber: "+6597638362", Password: "password123"},
			{ID: "u3", Email: "trainee@test.com", Name: "Alice Trainee", Role: domain.RoleTrainee, PhoneNumber: "+6597638363", Password: "password123", Credits: 10},
		},
		Classes: []domain.ClassSession{
			{ID: "c1", Name: "Morning Yoga", Date: "2025-05-20", Time: "08:00", Location: "Studio A", TrainerID: "u2", CreatorID: "u1"},
			{ID: "c2", Name: "HIIT Intensive", Date: "2025-05-21", Time: "18:30", Location: "Main Gym", TrainerID: "u2", CreatorID: "u1"},
		},
		Attendance: []domain.AttendanceRecord{},
		Packages: []domain.CreditPackage{
			{ID: "p1", Name: "Starter Pack", Credits: 10, Price: 180},
			{ID: "p2", Name: "Value Pack", Credits: 20, Price: 300},
			{ID: "p3", Name: "One-Time Pass", Credits: 1, Price: 30},
		},
		ActivityLogs: []domain.ActivityLog{},
	}
}
