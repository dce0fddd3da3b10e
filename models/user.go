package models

import "time"

// Role levels. Stored as a plain integer column; higher means more privileged.
const (
	RoleUser      = 1
	RoleAdmin     = 2
	RoleDeveloper = 3
)

type User struct {
	ID           int       `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         int       `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}
