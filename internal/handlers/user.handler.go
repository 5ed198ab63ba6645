package handlers

import (
	"kardetailing/internal/app"
	userController "kardetailing/internal/controllers/users"
	"kardetailing/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController: app.Controllers.User,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	profile := h.router.Group("/profile")

	profile.Get("", h.middleware.RequireAuth(), h.getProfile)
	profile.Put("", h.middleware.RequireAuth(), h.updateProfile)
}

func (h *UserHandler) getProfile(c *fiber.Ctx) error {
	log := h.requestLog(c, "getProfile")
	user := middleware.GetUser(c)

	profile, err := h.userController.GetProfile(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, log, err, "Something went wrong.")
	}

	return c.JSON(profile)
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	log := h.requestLog(c, "updateProfile")
	user := middleware.GetUser(c)

	var req userController.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return h.invalidBody(c, log, err)
	}

	updated, err := h.userController.UpdateProfile(c.UserContext(), user, req)
	if err != nil {
		return h.respondError(c, log, err, "Failed to update profile")
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    updated.ToProfile(),
	})
}
