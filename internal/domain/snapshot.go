package domain

// AppData is the complete dataset at one instant: the unit of atomic read and
// write. Every mutation replaces the whole snapshot; no partial update is ever
// visible to a reader.
type AppData struct {
	Users        []User             `bson:"users" json:"users"`
	Classes      []ClassSession     `bson:"classes" json:"classes"`
	Attendance   []AttendanceRecord `bson:"attendance" json:"attendance"`
	Packages     []CreditPackage    `bson:"packages" json:"packages"`
	ActivityLogs []ActivityLog      `bson:"activityLogs" json:"activityLogs"`
}

// Clone returns an independent copy of the snapshot. Elements are value
// structs, so copying the slices is sufficient.
func (d *AppData) Clone() *AppData {
	out := &AppData{
		Users:        make([]User, len(d.Users)),
		Classes:      make([]ClassSession, len(d.Classes)),
		Attendance:   make([]AttendanceRecord, len(d.Attendance)),
		Packages:     make([]CreditPackage, len(d.Packages)),
		ActivityLogs: make([]ActivityLog, len(d.ActivityLogs)),
	}
	copy(out.Users, d.Users)
	copy(out.Classes, d.Classes)
	copy(out.Attendance, d.Attendance)
	copy(out.Packages, d.Packages)
	copy(out.ActivityLogs, d.ActivityLogs)
	return out
}

// UserByID returns the user with the given id, or nil.
func (d *AppData) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// ClassByID returns the class session with the given id, or nil.
func (d *AppData) ClassByID(id string) *ClassSession {
	for i := range d.Classes {
		if d.Classes[i].ID == id {
			return &d.Classes[i]
		}
	}
	return nil
}

// PackageByID returns the credit package with the given id, or nil.
func (d *AppData) PackageByID(id string) *CreditPackage {
	for i := range d.Packages {
		if d.Packages[i].ID == id {
			return &d.Packages[i]
		}
	}
	return nil
}

// ActiveRecord returns the active attendance record for the (trainee, class)
// pair, or nil when the trainee holds no slot in that class.
func (d *AppData) ActiveRecord(traineeID, classID string) *AttendanceRecord {
	for i := range d.Attendance {
		if d.Attendance[i].TraineeID == traineeID && d.Attendance[i].ClassID == classID {
			return &d.Attendance[i]
		}
	}
	return nil
}
