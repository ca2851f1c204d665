package models

import "time"

// User is a stored member account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Nickname  string    `json:"nickname,omitempty" gorm:"type:varchar(100)"`
	Title     string    `json:"title,omitempty" gorm:"type:varchar(100)"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is the authenticated identity as seen by the admin panel.
type Member struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	LoginEmail   string `json:"login_email,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	ProfileTitle string `json:"profile_title,omitempty"`
}

// DisplayName is used in the greeting text.
func (m Member) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	if m.Username != "" {
		return m.Username
	}
	return m.LoginEmail
}
