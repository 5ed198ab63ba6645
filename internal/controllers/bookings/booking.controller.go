package bookingController

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kardetailing/internal/assessment"
	. "kardetailing/internal/models"
	"kardetailing/internal/repositories"
	"kardetailing/internal/types"
	"kardetailing/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	firstSlotHour = 5
	lastSlotHour  = 22
)

const msgBookingNotFound = "Booking not found"

type BookingController struct {
	bookingRepo repositories.BookingRepository
	log         logger.Logger
}

type BookingControllerInterface interface {
	Create(ctx context.Context, owner *User, req CreateBookingRequest) (*Booking, error)
	List(ctx context.Context, actor *User) ([]*Booking, error)
	MarkCompleted(ctx context.Context, actor *User, bookingID string) (*StatusResponse, error)
	Options() OptionsResponse
}

type CreateBookingRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
	Notes   string `json:"notes"`
}

type StatusResponse struct {
	Message string        `json:"message"`
	Status  BookingStatus `json:"status"`
}

type OptionsResponse struct {
	TimeSlots []string                   `json:"timeSlots"`
	Services  []assessment.ServiceOption `json:"services"`
}

func New(repos repositories.Repository) BookingControllerInterface {
	return &BookingController{
		bookingRepo: repos.Booking,
		log:         logger.New("bookingController"),
	}
}

func (bc *BookingController) Create(
	ctx context.Context,
	owner *User,
	req CreateBookingRequest,
) (*Booking, error) {
	log := bc.log.TraceFromContext(ctx).Function("Create")

	req = req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	date, err := utils.ParseCalendarDate(req.Date)
	if err != nil {
		return nil, types.Wrap(types.ErrValidation, err.Error())
	}

	booking := &Booking{
		UserID:  owner.ID,
		Name:    req.Name,
		Contact: req.Contact,
		Date:    datatypes.Date(date),
		Time:    req.Time,
		Service: req.Service,
		Notes:   req.Notes,
		Status:  BookingStatusPending,
	}

	if err := bc.bookingRepo.Create(ctx, booking); err != nil {
		return nil, log.Err("failed to create booking", err, "userID", owner.ID)
	}

	log.Info("booking created", "bookingID", booking.ID, "userID", owner.ID)
	return booking, nil
}

// List returns every booking to admins and only the caller's own bookings to
// everyone else.
func (bc *BookingController) List(ctx context.Context, actor *User) ([]*Booking, error) {
	log := bc.log.TraceFromContext(ctx).Function("List")

	var (
		bookings []*Booking
		err      error
	)
	if actor.IsAdmin {
		bookings, err = bc.bookingRepo.ListAll(ctx)
	} else {
		bookings, err = bc.bookingRepo.ListByOwner(ctx, actor.ID)
	}
	if err != nil {
		return nil, log.Err("failed to list bookings", err, "userID", actor.ID)
	}

	return bookings, nil
}

func (bc *BookingController) MarkCompleted(
	ctx context.Context,
	actor *User,
	bookingID string,
) (*StatusResponse, error) {
	log := bc.log.TraceFromContext(ctx).Function("MarkCompleted")

	if actor == nil || !actor.IsAdmin {
		return nil, types.Wrap(types.ErrForbidden, "Admin access required")
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, types.Wrap(types.ErrNotFound, msgBookingNotFound)
	}

	if err := bc.bookingRepo.UpdateStatus(ctx, id, BookingStatusCompleted); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.Wrap(types.ErrNotFound, msgBookingNotFound)
		}
		return nil, log.Err("failed to mark booking completed", err, "bookingID", id)
	}

	log.Info("booking completed", "bookingID", id, "adminID", actor.ID)
	return &StatusResponse{
		Message: "Booking marked as completed",
		Status:  BookingStatusCompleted,
	}, nil
}

func (bc *BookingController) Options() OptionsResponse {
	return OptionsResponse{
		TimeSlots: TimeSlots(),
		Services:  assessment.ServiceOptions(),
	}
}

// TimeSlots lists the bookable hours, "05:00 AM" through "10:00 PM".
func TimeSlots() []string {
	slots := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slot := time.Date(2000, time.January, 1, hour, 0, 0, 0, time.UTC)
		slots = append(slots, slot.Format("03:04 PM"))
	}
	return slots
}

func (req CreateBookingRequest) normalize() CreateBookingRequest {
	return CreateBookingRequest{
		Name:    strings.TrimSpace(req.Name),
		Contact: strings.TrimSpace(req.Contact),
		Date:    strings.TrimSpace(req.Date),
		Time:    strings.TrimSpace(req.Time),
		Service: strings.TrimSpace(req.Service),
		Notes:   strings.TrimSpace(req.Notes),
	}
}

func (req CreateBookingRequest) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", req.Name},
		{"contact", req.Contact},
		{"date", req.Date},
		{"time", req.Time},
		{"service", req.Service},
	}

	for _, r := range required {
		if r.value == "" {
			return types.Wrap(types.ErrValidation, fmt.Sprintf("%s is required", r.field))
		}
	}

	return nil
}
