package models

import (
	"time"
)

// User is the identity record owned by the user directory
type User struct {
	ID             int64     `json:"id" db:"id"`
	Phone          string    `json:"phone" db:"phone"`
	FirstName      *string   `json:"firstName" db:"first_name"`
	LastName       *string   `json:"lastName" db:"last_name"`
	EducationLevel *string   `json:"educationLevel" db:"education_level"`
	IsVerified     bool      `json:"isVerified" db:"is_verified"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// ProfileUpdate lists the only user fields a caller may change.
// Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	FirstName      *string `json:"firstName" validate:"omitnil,min=1,max=50"`
	LastName       *string `json:"lastName" validate:"omitnil,min=1,max=50"`
	EducationLevel *string `json:"educationLevel" validate:"omitnil,max=64,slug"`
}

// Empty reports whether the update carries no fields
func (p *ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.EducationLevel == nil
}

// Identity is the caller resolved from an access token
type Identity struct {
	UserID int64  `json:"userId"`
	Phone  string `json:"phone"`
}
