package models

import "time"

// Role determines what a logged-in user may do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account record. Records are immutable after creation; the only
// credential ever stored is a bcrypt hash. Demo accounts live in a seed slice
// and are never written to the registeredUsers collection.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the credential-free shape of a User. It is the only user
// shape that crosses the API, JWT claims, and the currentUser storage key.
type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u PublicUser) IsAdmin() bool { return u.Role == RoleAdmin }
