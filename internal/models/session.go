package models

import "time"

// SessionData is the serialized payload stored in the sessions side table.
type SessionData struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

type Session struct {
	SID       string
	Data      SessionData
	ExpiresAt time.Time
}
