package userController

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	. "kardetailing/internal/models"
	"kardetailing/internal/repositories"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	MaxNameLength          = 120
	MaxContactNumberLength = 50
	MaxAddressLength       = 300
)

type UserController struct {
	userRepo    repositories.UserRepository
	bookingRepo repositories.BookingRepository
	log         logger.Logger
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, user *User) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, user *User, req UpdateProfileRequest) (*User, error)
}

type UpdateProfileRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

type ProfileResponse struct {
	Name          string     `json:"name"`
	ContactNumber string     `json:"contactNumber"`
	Address       string     `json:"address"`
	Email         string     `json:"email"`
	IsAdmin       bool       `json:"isAdmin"`
	Bookings      []*Booking `json:"bookings"`
}

func New(repos repositories.Repository) UserControllerInterface {
	return &UserController{
		userRepo:    repos.User,
		bookingRepo: repos.Booking,
		log:         logger.New("userController"),
	}
}

func (uc *UserController) GetProfile(ctx context.Context, user *User) (*ProfileResponse, error) {
	log := uc.log.TraceFromContext(ctx).Function("GetProfile")

	bookings, err := uc.bookingRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load user bookings", err, "userID", user.ID)
	}

	return &ProfileResponse{
		Name:          user.Name,
		ContactNumber: user.ContactNumber,
		Address:       user.Address,
		Email:         user.Email,
		IsAdmin:       user.IsAdmin,
		Bookings:      bookings,
	}, nil
}

func (uc *UserController) UpdateProfile(
	ctx context.Context,
	user *User,
	req UpdateProfileRequest,
) (*User, error) {
	log := uc.log.TraceFromContext(ctx).Function("UpdateProfile")

	req = req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateProfile(ctx, user.ID, req.Name, req.ContactNumber, req.Address); err != nil {
		return nil, log.Err("failed to update profile", err, "userID", user.ID)
	}

	updated := *user
	updated.Name = req.Name
	updated.ContactNumber = req.ContactNumber
	updated.Address = req.Address

	log.Info("profile updated", "userID", user.ID)
	return &updated, nil
}

func (req UpdateProfileRequest) normalize() UpdateProfileRequest {
	return UpdateProfileRequest{
		Name:          strings.TrimSpace(req.Name),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Address:       strings.TrimSpace(req.Address),
	}
}

func (req UpdateProfileRequest) validate() error {
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"name", req.Name, MaxNameLength},
		{"contactNumber", req.ContactNumber, MaxContactNumberLength},
		{"address", req.Address, MaxAddressLength},
	}

	for _, limit := range limits {
		if utf8.RuneCountInString(limit.value) > limit.max {
			return types.Wrap(
				types.ErrValidation,
				fmt.Sprintf("%s must be at most %d characters", limit.field, limit.max),
			)
		}
	}

	return nil
}
