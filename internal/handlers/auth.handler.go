package handlers

import (
	"time"

	"kardetailing/config"
	"kardetailing/internal/app"
	authController "kardetailing/internal/controllers/auth"
	"kardetailing/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
	config         config.Config
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		config:         app.Config,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
	auth.Get("/profile", h.middleware.RequireAuth(), h.getProfile)
	auth.Get("/users", h.middleware.RequireAuth(), h.middleware.RequireAdmin(), h.getAllUsers)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.requestLog(c, "register")

	var req authController.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return h.invalidBody(c, log, err)
	}

	if _, err := h.authController.Register(c.UserContext(), req); err != nil {
		return h.respondError(c, log, err, "Registration failed.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registered successfully",
	})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.requestLog(c, "login")

	var req authController.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return h.invalidBody(c, log, err)
	}

	result, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return h.respondError(c, log, err, "Login failed.")
	}

	response := fiber.Map{
		"user":      result.User.ToProfile(),
		"expiresAt": result.Session.ExpiresAt,
	}

	if h.config.SessionTransport == config.SessionTransportHeader {
		response["token"] = result.Session.Token
	} else {
		c.Cookie(h.sessionCookie(result.Session.Token, result.Session.ExpiresAt))
	}

	return c.JSON(response)
}

// logout only clears the cookie; a signed token stays valid until it expires.
func (h *AuthHandler) logout(c *fiber.Ctx) error {
	cookie := h.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.Cookie(cookie)

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

func (h *AuthHandler) getProfile(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	return c.JSON(user.ToProfile())
}

func (h *AuthHandler) getAllUsers(c *fiber.Ctx) error {
	log := h.requestLog(c, "getAllUsers")

	users, err := h.authController.ListUsers(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return h.respondError(c, log, err, "Failed to load users")
	}

	return c.JSON(users)
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.config.SessionCookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
