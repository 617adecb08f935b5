package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FullName     *string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
