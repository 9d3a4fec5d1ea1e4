package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "admin"
	RoleTrainee Role = "trainee"
)

// User represents a user in the system (either an Admin or a Trainee).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Firstname    string             `bson:"firstname" json:"firstname"`
	Lastname     string             `bson:"lastname" json:"lastname"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`

	// Genus is the role/track the trainee belongs to; it determines which
	// master-matrix rows apply when an individual plan is composed.
	Genus string `bson:"genus" json:"genus"`

	// ProfileImageKey is the object-storage key of the user's profile image,
	// empty when none has been uploaded.
	ProfileImageKey string `bson:"profileImageKey,omitempty" json:"-"`

	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}
