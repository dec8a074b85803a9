package domain

// AttendanceStatus describes how a slot came to be held. It is provenance
// metadata, not engine state: the presence of the record is what matters.
type AttendanceStatus string

const (
	StatusBooked   AttendanceStatus = "BOOKED"   // trainee booked the slot
	StatusAttended AttendanceStatus = "ATTENDED" // staff marked the trainee present
	// StatusCancelled exists for snapshot compatibility; the ledger removes
	// records on cancellation instead of producing it.
	StatusCancelled AttendanceStatus = "CANCELLED"
)

// AttendanceMethod identifies who triggered the credit movement.
type AttendanceMethod string

const (
	MethodSelf  AttendanceMethod = "SELF"
	MethodStaff AttendanceMethod = "STAFF"
)

// AttendanceRecord marks a trainee as currently holding a credit-consuming
// slot in a class. At most one active record exists per (trainee, class) pair;
// cancelling or refunding removes the record rather than soft-deleting it.
type AttendanceRecord struct {
	ID        string           `bson:"id" json:"id"`
	TraineeID string           `bson:"traineeId" json:"traineeId"`
	ClassID   string           `bson:"classId" json:"classId"`
	Status    AttendanceStatus `bson:"status" json:"status"`
	Method    AttendanceMethod `bson:"method" json:"method"`
	Timestamp int64            `bson:"timestamp" json:"timestamp"` // ms since epoch
}
