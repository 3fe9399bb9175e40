package entity

import "time"

type User struct {
	ID           string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Logo         string    `json:"logo"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type Notification struct {
	ID      string    `json:"_id"`
	UserID  string    `json:"-"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

// Caller is the identity a request acts under.
type Caller struct {
	UserID  string
	IsAdmin bool
}

func (c Caller) Authenticated() bool {
	return c.UserID != ""
}
