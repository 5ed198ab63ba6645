package handlers

import (
	"kardetailing/internal/app"
	feedbackController "kardetailing/internal/controllers/feedback"
	"kardetailing/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	Handler
	feedbackController feedbackController.FeedbackControllerInterface
}

func NewFeedbackHandler(app app.App, router fiber.Router) *FeedbackHandler {
	log := logger.New("handlers").File("feedback_handler")
	return &FeedbackHandler{
		feedbackController: app.Controllers.Feedback,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *FeedbackHandler) Register() {
	feedback := h.router.Group("/feedback")

	feedback.Get("", h.getFeedback)
	feedback.Post("", h.middleware.RequireAuth(), h.submitFeedback)
	feedback.Delete("/:id", h.middleware.RequireAuth(), h.middleware.RequireAdmin(), h.deleteFeedback)
}

func (h *FeedbackHandler) getFeedback(c *fiber.Ctx) error {
	log := h.requestLog(c, "getFeedback")

	feedback, err := h.feedbackController.List(c.UserContext())
	if err != nil {
		return h.respondError(c, log, err, "Failed to load feedback")
	}

	return c.JSON(feedback)
}

func (h *FeedbackHandler) submitFeedback(c *fiber.Ctx) error {
	log := h.requestLog(c, "submitFeedback")

	var req feedbackController.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return h.invalidBody(c, log, err)
	}

	feedback, err := h.feedbackController.Submit(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return h.respondError(c, log, err, "Failed to submit feedback")
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

func (h *FeedbackHandler) deleteFeedback(c *fiber.Ctx) error {
	log := h.requestLog(c, "deleteFeedback")

	if err := h.feedbackController.Delete(c.UserContext(), middleware.GetUser(c), c.Params("id")); err != nil {
		return h.respondError(c, log, err, "Failed to delete feedback")
	}

	return c.JSON(fiber.Map{
		"message": "Feedback deleted",
	})
}
