package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin" // may trigger glossary seeding
)

// User represents an app account plus the small profile document the
// SPA reads on every page: the selected pain area and the lifetime
// completed-routine counter.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`

	// Profile fields mirrored to the frontend.
	SelectedArea      string     `bson:"selectedArea,omitempty" json:"selectedArea,omitempty"` // e.g. "knee", "ankle", "low back"
	RoutinesCompleted int        `bson:"routinesCompleted" json:"routinesCompleted"`
	LastCompletedAt   *time.Time `bson:"lastCompletedAt,omitempty" json:"lastCompletedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
