package domain

import (
	"testing"
	"time"
)

func TestStartsAt(t *testing.T) {
	s := ClassSession{ID: "c1", Name: "Morning Yoga", Date: "2025-05-20", Time: "08:00"}

	got, err := s.StartsAt()
	if err != nil {
		t.Fatalf("StartsAt returned error: %v", err)
	}
	want := time.Date(2025, 5, 20, 8, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("StartsAt() = %v, want %v", got, want)
	}
}

func TestStartsAtInvalid(t *testing.T) {
	tests := []struct {
		name string
		date string
		time string
	}{
		{"bad date", "20-05-2025", "08:00"},
		{"bad time", "2025-05-20", "8am"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ClassSession{Date: tt.date, Time: tt.time}
			if _, err := s.StartsAt(); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}
