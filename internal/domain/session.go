package domain

import (
	"time"
)

// Layouts for the calendar fields on ClassSession and ActivityLog.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ClassSession represents a scheduled class on the gym timetable.
// No two sessions may share the same normalized name, date and time.
type ClassSession struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Date     string `bson:"date" json:"date"` // YYYY-MM-DD
	Time     string `bson:"time" json:"time"` // HH:mm (24h)
	Location string `bson:"location" json:"location"`

	// TrainerID references the assigned trainer; empty means unassigned.
	TrainerID string `bson:"trainerId" json:"trainerId"`
	// CreatorID references the user who scheduled the session. It determines
	// the authorship badge and which trainer may edit or delete the session.
	CreatorID string `bson:"creatorId,omitempty" json:"creatorId,omitempty"`
}

// StartsAt combines Date and Time into the session's start instant,
// interpreted in local time.
func (s ClassSession) StartsAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.Time, time.Local)
}
