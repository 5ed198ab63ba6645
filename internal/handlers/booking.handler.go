package handlers

import (
	"kardetailing/internal/app"
	bookingController "kardetailing/internal/controllers/bookings"
	"kardetailing/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Handler
	bookingController bookingController.BookingControllerInterface
}

func NewBookingHandler(app app.App, router fiber.Router) *BookingHandler {
	log := logger.New("handlers").File("booking_handler")
	return &BookingHandler{
		bookingController: app.Controllers.Booking,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *BookingHandler) Register() {
	bookings := h.router.Group("/bookings")

	bookings.Get("/options", h.getOptions)
	bookings.Post("", h.middleware.RequireAuth(), h.createBooking)
	bookings.Get("", h.middleware.RequireAuth(), h.getBookings)
	bookings.Put(
		"/status/:id",
		h.middleware.RequireAuth(),
		h.middleware.RequireAdmin(),
		h.markCompleted,
	)
}

func (h *BookingHandler) getOptions(c *fiber.Ctx) error {
	return c.JSON(h.bookingController.Options())
}

func (h *BookingHandler) createBooking(c *fiber.Ctx) error {
	log := h.requestLog(c, "createBooking")
	user := middleware.GetUser(c)

	var req bookingController.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return h.invalidBody(c, log, err)
	}

	booking, err := h.bookingController.Create(c.UserContext(), user, req)
	if err != nil {
		return h.respondError(c, log, err, "Failed to create booking")
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) getBookings(c *fiber.Ctx) error {
	log := h.requestLog(c, "getBookings")

	bookings, err := h.bookingController.List(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return h.respondError(c, log, err, "Failed to load bookings")
	}

	return c.JSON(bookings)
}

func (h *BookingHandler) markCompleted(c *fiber.Ctx) error {
	log := h.requestLog(c, "markCompleted")

	resp, err := h.bookingController.MarkCompleted(
		c.UserContext(),
		middleware.GetUser(c),
		c.Params("id"),
	)
	if err != nil {
		return h.respondError(c, log, err, "Failed to update status")
	}

	return c.JSON(resp)
}
