package repositories

import (
	"errors"

	"kardetailing/internal/database"
	"kardetailing/internal/types"

	"gorm.io/gorm"
)

type Repository struct {
	User     UserRepository
	Booking  BookingRepository
	Feedback FeedbackRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:     NewUserRepository(db),
		Booking:  NewBookingRepository(db),
		Feedback: NewFeedbackRepository(db),
	}
}

// notFound converts GORM's missing-row error into the shared taxonomy and
// leaves every other error untouched.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Wrap(types.ErrNotFound, message)
	}
	return err
}
