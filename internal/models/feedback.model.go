package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinFeedbackRating        = 1
	MaxFeedbackRating        = 5
	MaxFeedbackCommentLength = 200
)

// Feedback is hard-deleted, so it carries its own id and timestamp instead of
// the soft-delete base model.
type Feedback struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"                           json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"                                json:"userId,omitempty"`
	Name      string     `gorm:"type:text"                                      json:"name,omitempty"`
	Rating    int        `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string     `gorm:"type:varchar(200);not null"                     json:"comment"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"                           json:"createdAt"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}
