package model

import "time"

// User represents a staff account operating a terminal.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}
