package controllers

import (
	"kardetailing/internal/repositories"
	"kardetailing/internal/services"

	assessmentController "kardetailing/internal/controllers/assessment"
	authController "kardetailing/internal/controllers/auth"
	bookingController "kardetailing/internal/controllers/bookings"
	feedbackController "kardetailing/internal/controllers/feedback"
	userController "kardetailing/internal/controllers/users"
)

type Controllers struct {
	Auth       authController.AuthControllerInterface
	User       userController.UserControllerInterface
	Booking    bookingController.BookingControllerInterface
	Feedback   feedbackController.FeedbackControllerInterface
	Assessment assessmentController.AssessmentControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
) Controllers {
	return Controllers{
		Auth:       authController.New(repos, services),
		User:       userController.New(repos),
		Booking:    bookingController.New(repos),
		Feedback:   feedbackController.New(repos),
		Assessment: assessmentController.New(),
	}
}
