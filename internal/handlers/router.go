package handlers

import (
	"kardetailing/internal/app"
	"kardetailing/internal/handlers/middleware"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api", app.Middleware.TraceID())
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewBookingHandler(*app, api).Register()
	NewFeedbackHandler(*app, api).Register()
	NewAssessmentHandler(*app, api).Register()

	return nil
}

// respondError writes the error body for err. Errors outside the taxonomy are
// logged and answered with fallback.
func (h *Handler) respondError(c *fiber.Ctx, log logger.Logger, err error, fallback string) error {
	status := types.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Er(fallback, err)
		return c.Status(status).JSON(fiber.Map{"error": fallback})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": types.Message(err, fallback),
	})
}

func (h *Handler) invalidBody(c *fiber.Ctx, log logger.Logger, err error) error {
	log.Warn("Invalid request body", "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}

func (h *Handler) requestLog(c *fiber.Ctx, function string) logger.Logger {
	return h.log.TraceFromContext(c.UserContext()).Function(function)
}
