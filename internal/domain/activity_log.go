package domain

// ActivityType classifies ledger-affecting actions in the audit trail.
type ActivityType string

const (
	ActivityBooking      ActivityType = "BOOKING"
	ActivityAttendance   ActivityType = "ATTENDANCE"
	ActivityCancellation ActivityType = "CANCELLATION"
	ActivityRefund       ActivityType = "REFUND"
	ActivityPurchase     ActivityType = "PURCHASE"
)

// ActivityLog is an append-only audit entry. TraineeName, ClassName, Location,
// Date and Time are snapshots of the referenced entities taken at event time;
// they intentionally go stale if the user is renamed or the session edited
// later, so the trail reflects what the member actually saw.
type ActivityLog struct {
	ID          string           `bson:"id" json:"id"`
	TraineeID   string           `bson:"traineeId" json:"traineeId"`
	TraineeName string           `bson:"traineeName" json:"traineeName"`
	ClassName   string           `bson:"className" json:"className"`
	Location    string           `bson:"location" json:"location"`
	Date        string           `bson:"date" json:"date"`
	Time        string           `bson:"time" json:"time"`
	Method      AttendanceMethod `bson:"method" json:"method"`
	Type        ActivityType     `bson:"type" json:"type"`
	Timestamp   int64            `bson:"timestamp" json:"timestamp"` // ms since epoch

	// Amount is the price paid; set on PURCHASE entries only.
	Amount float64 `bson:"amount,omitempty" json:"amount,omitempty"`
}
