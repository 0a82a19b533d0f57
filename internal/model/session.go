package model

import (
	"encoding/json"
	"time"
)

// Session is the one piece of durable shopfront state: the backend bearer
// token plus a snapshot of the logged-in user, keyed by the browser cookie.
type Session struct {
	ID        string `gorm:"primaryKey;size:36"`
	Token     string `gorm:"not null"`
	UserJSON  string `gorm:"not null"`
	Staff     bool   `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) User() *User {
	var u User
	if err := json.Unmarshal([]byte(s.UserJSON), &u); err != nil {
		return nil
	}
	return &u
}

func (s *Session) SetUser(u *User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	s.UserJSON = string(b)
	return nil
}

type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}
