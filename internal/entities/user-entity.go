package entities

import "time"

type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

func (r UserRole) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
