package types

import "time"

// User is the core identity record.
type User struct {
	ID           int64     `json:"id" example:"1"`
	Name         string    `json:"name" example:"Jane Doe"`
	Email        string    `json:"email" example:"jane@example.com"` // Unique, matched case-sensitively as stored.
	PasswordHash string    `json:"-"`                                // Never exposed.
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the subset of User returned by the API.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips everything that must not cross the boundary.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
