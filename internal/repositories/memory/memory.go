// Package memory holds map-backed implementations of the repository
// interfaces. They mirror the GORM repositories' ordering and error
// semantics so controllers and handlers can be exercised without Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"kardetailing/internal/models"
	"kardetailing/internal/repositories"
	"kardetailing/internal/types"

	"github.com/google/uuid"
)

func New() repositories.Repository {
	return repositories.Repository{
		User:     NewUserRepository(),
		Booking:  NewBookingRepository(),
		Feedback: NewFeedbackRepository(),
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.Wrap(types.ErrDuplicateIdentifier, "Email already exists.")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = newID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, types.Wrap(types.ErrNotFound, "User not found")
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, types.Wrap(types.ErrNotFound, "User not found")
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserRepository) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	name, contactNumber, address string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return types.Wrap(types.ErrNotFound, "User not found")
	}
	user.Name = name
	user.ContactNumber = contactNumber
	user.Address = address
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return types.Wrap(types.ErrNotFound, "User not found")
	}
	user.LastLoginAt = &at
	r.users[id] = user
	return nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return types.Wrap(types.ErrNotFound, "User not found")
	}
	user.IsAdmin = isAdmin
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]models.Booking
	seq      int
	order    map[uuid.UUID]int
}

var _ repositories.BookingRepository = (*BookingRepository)(nil)

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[uuid.UUID]models.Booking),
		order:    make(map[uuid.UUID]int),
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == uuid.Nil {
		booking.ID = newID()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	r.seq++
	r.order[booking.ID] = r.seq
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, types.Wrap(types.ErrNotFound, "Booking not found")
	}
	booking.NormalizeStatus()
	return &booking, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*models.Booking, error) {
	return r.list(func(models.Booking) bool { return true }), nil
}

func (r *BookingRepository) ListByOwner(
	ctx context.Context,
	userID uuid.UUID,
) ([]*models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status models.BookingStatus,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return types.Wrap(types.ErrNotFound, "Booking not found")
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	r.bookings[id] = booking
	return nil
}

// list orders by date descending, newest insertion first within a day.
func (r *BookingRepository) list(keep func(models.Booking) bool) []*models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*models.Booking, 0, len(r.bookings))
	for _, booking := range r.bookings {
		if !keep(booking) {
			continue
		}
		booking.NormalizeStatus()
		bookings = append(bookings, &booking)
	}

	sort.Slice(bookings, func(i, j int) bool {
		di := time.Time(bookings[i].Date)
		dj := time.Time(bookings[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return r.order[bookings[i].ID] > r.order[bookings[j].ID]
	})
	return bookings
}

type FeedbackRepository struct {
	mu       sync.RWMutex
	feedback []models.Feedback
}

var _ repositories.FeedbackRepository = (*FeedbackRepository)(nil)

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if feedback.ID == uuid.Nil {
		feedback.ID = newID()
	}
	feedback.CreatedAt = time.Now()
	r.feedback = append(r.feedback, *feedback)
	return nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feedback := make([]*models.Feedback, 0, len(r.feedback))
	for i := len(r.feedback) - 1; i >= 0; i-- {
		entry := r.feedback[i]
		feedback = append(feedback, &entry)
	}
	return feedback, nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.feedback {
		if entry.ID == id {
			r.feedback = append(r.feedback[:i], r.feedback[i+1:]...)
			return nil
		}
	}
	return types.Wrap(types.ErrNotFound, "Feedback not found")
}
