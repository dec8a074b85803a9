package domain

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleTrainee Role = "TRAINEE"
)

// User represents an account in the system (Admin, Trainer or Trainee).
type User struct {
	ID          string `bson:"id" json:"id"`
	Email       string `bson:"email" json:"email"` // Should be unique
	Name        string `bson:"name" json:"name"`
	Role        Role   `bson:"role" json:"role"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	Password    string `bson:"password" json:"-"` // Never expose this via JSON

	// --- Trainee-specific ---
	// Credit balance; only meaningful for trainees. Ledger operations are the
	// sole mutator and never take it below zero.
	Credits int `bson:"credits" json:"credits"`

	// ProfileImage holds the object key of the avatar in S3, if one was uploaded.
	ProfileImage string `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
}

// Helper methods (Optional but can be useful)
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}

// IsStaff reports whether the user may mark attendance for trainees.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleTrainer
}
