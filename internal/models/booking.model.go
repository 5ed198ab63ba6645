package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusCompleted BookingStatus = "Completed"
)

type Booking struct {
	BaseUUIDModel
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index"      json:"userId"`
	Name    string         `gorm:"type:text;not null"            json:"name"`
	Contact string         `gorm:"type:text;not null"            json:"contact"`
	Date    datatypes.Date `gorm:"not null;index"                json:"date"`
	Time    string         `gorm:"type:text;not null"            json:"time"`
	Service string         `gorm:"type:text;not null"            json:"service"`
	Notes   string         `gorm:"type:text"                     json:"notes,omitempty"`
	Status  BookingStatus  `gorm:"type:text;default:'Pending'"   json:"status"`
}

// AfterFind reports legacy rows without a status as pending.
func (b *Booking) AfterFind(tx *gorm.DB) error {
	b.NormalizeStatus()
	return nil
}

func (b *Booking) NormalizeStatus() {
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
}

func (b *Booking) IsCompleted() bool {
	return b.Status == BookingStatusCompleted
}
