package repositories

import (
	"context"

	"kardetailing/internal/database"
	. "kardetailing/internal/models"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const bookingOrder = "date DESC, created_at DESC"

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error
}

type bookingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBookingRepository(db database.DB) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: logger.New("bookingRepository"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *Booking) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(booking).Error; err != nil {
		return log.Err("failed to create booking", err, "userID", booking.UserID)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	if err := r.db.SQLWithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Booking not found")
	}

	return &booking, nil
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	log := r.log.Function("ListAll")

	var bookings []*Booking
	if err := r.db.SQLWithContext(ctx).Order(bookingOrder).Find(&bookings).Error; err != nil {
		return nil, log.Err("failed to list bookings", err)
	}

	return bookings, nil
}

func (r *bookingRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	log := r.log.Function("ListByOwner")

	var bookings []*Booking
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order(bookingOrder).
		Find(&bookings).Error; err != nil {
		return nil, log.Err("failed to list bookings for user", err, "userID", userID)
	}

	return bookings, nil
}

// UpdateStatus writes the status unconditionally; writing the same value
// twice is not an error.
func (r *bookingRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status BookingStatus,
) error {
	log := r.log.Function("UpdateStatus")

	result := r.db.SQLWithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update booking status", result.Error, "bookingID", id)
	}
	if result.RowsAffected == 0 {
		return types.Wrap(types.ErrNotFound, "Booking not found")
	}

	return nil
}
