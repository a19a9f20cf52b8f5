package model

import (
	"time"
)

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not exposed
	Role         string    `json:"role"`
	ResetToken   *string   `json:"-"` // Non-nil only between forgot-password and reset-password
	CreatedAt    time.Time `json:"created_at"`
}
