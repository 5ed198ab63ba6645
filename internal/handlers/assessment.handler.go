package handlers

import (
	"kardetailing/internal/app"
	assessmentController "kardetailing/internal/controllers/assessment"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	Handler
	assessmentController assessmentController.AssessmentControllerInterface
}

func NewAssessmentHandler(app app.App, router fiber.Router) *AssessmentHandler {
	log := logger.New("handlers").File("assessment_handler")
	return &AssessmentHandler{
		assessmentController: app.Controllers.Assessment,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AssessmentHandler) Register() {
	assessment := h.router.Group("/assessment")

	assessment.Get("/questions", h.getQuestions)
	assessment.Post("/resolve", h.resolve)
}

func (h *AssessmentHandler) getQuestions(c *fiber.Ctx) error {
	return c.JSON(h.assessmentController.Questions())
}

func (h *AssessmentHandler) resolve(c *fiber.Ctx) error {
	log := h.requestLog(c, "resolve")

	var req assessmentController.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return h.invalidBody(c, log, err)
	}

	return c.JSON(h.assessmentController.Resolve(c.UserContext(), req))
}
