package models

import "time"

// Admin is a platform administrator account
type Admin struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
