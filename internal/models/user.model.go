package models

import (
	"time"
)

type User struct {
	BaseUUIDModel
	Email         string     `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"type:text;not null"             json:"-"`
	IsAdmin       bool       `gorm:"type:bool;default:false"        json:"isAdmin"`
	Name          string     `gorm:"type:text"                      json:"name"`
	ContactNumber string     `gorm:"type:text"                      json:"contactNumber"`
	Address       string     `gorm:"type:text"                      json:"address"`
	LastLoginAt   *time.Time `gorm:"type:timestamp"                 json:"lastLoginAt,omitempty"`
}

// UserProfile is the account as returned to clients; it never carries the
// password hash.
type UserProfile struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	ContactNumber string     `json:"contactNumber"`
	Address       string     `json:"address"`
	IsAdmin       bool       `json:"isAdmin"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:            u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		IsAdmin:       u.IsAdmin,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

// DisplayName is the name shown next to the user's feedback.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (u *User) MarkLoggedIn(at time.Time) {
	u.LastLoginAt = &at
}
