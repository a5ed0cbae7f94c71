package domain

import "time"

// UserRole enumerates the access tiers a user can hold.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RolePlus  UserRole = "plus"
	RolePro   UserRole = "pro"
	RoleAdmin UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RolePlus, RolePro, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the domain. Either Email or PhoneNumber
// identifies the user; both are unique when present.
type User struct {
	UserID       string    `json:"userID"` // Primary Key (UUID)
	Email        *string   `json:"email,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	FullName     string    `json:"fullName"`
	AvatarURL    *string   `json:"avatarURL,omitempty"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin is the capability predicate for admin-only routes.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// TokenSubject returns the identifier encoded into session tokens.
func (u *User) TokenSubject() string {
	return u.UserID
}
