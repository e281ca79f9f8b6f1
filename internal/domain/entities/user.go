package entities

import (
	"time"
)

// Role is the closed set of access levels a user can hold
type Role string

const (
	RoleUser   Role = "user"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a stored role string onto the closed enum.
// Anything unknown (including the empty string) falls back to RoleUser,
// the explicit default for freshly registered accounts.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleMember:
		return RoleMember
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// User represents a registered account, keyed by email
type User struct {
	ID                    string     `json:"id" db:"id"`
	Email                 string     `json:"email" db:"email"`
	Name                  string     `json:"name" db:"name"`
	Role                  Role       `json:"role" db:"role"`
	MembershipGrantedDate *time.Time `json:"membership_granted_date,omitempty" db:"membership_granted_date"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// IsMember reports whether the user holds an active membership
func (u *User) IsMember() bool {
	return u.Role == RoleMember
}

// Review represents a user review of the club
type Review struct {
	ID        string    `json:"id" db:"id"`
	UserName  string    `json:"user_name" db:"user_name"`
	UserEmail string    `json:"user_email" db:"user_email"`
	Rating    int       `json:"rating" db:"rating"` // 1-5
	Comment   string    `json:"comment" db:"comment"`
	Date      time.Time `json:"date" db:"date"`
}
