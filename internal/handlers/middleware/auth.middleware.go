package middleware

import (
	"context"
	"strings"

	"kardetailing/config"
	"kardetailing/internal/models"
	"kardetailing/internal/types"

	"github.com/gofiber/fiber/v2"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	UserKey      AuthContextKey = "user"
	UserKeyFiber string         = "User"

	SessionCookieName = "token"
)

// RequireAuth resolves the session artifact to an account and rejects the
// request when it is missing or invalid.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("RequireAuth")

		token := m.SessionToken(c)
		user, err := m.authController.CurrentUser(c.UserContext(), token)
		if err != nil {
			status := types.HTTPStatus(err)
			if status == fiber.StatusInternalServerError {
				log.Er("failed to resolve session", err)
			} else {
				log.Info("request rejected", "path", c.Path(), "reason", err.Error())
			}
			return c.Status(status).JSON(fiber.Map{
				"error": types.Message(err, "Authentication failed"),
			})
		}

		c.Locals(UserKeyFiber, user)

		// Keep the trace ID set by the TraceID middleware.
		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// SessionToken reads the artifact from wherever the deployment carries it.
func (m *Middleware) SessionToken(c *fiber.Ctx) string {
	if m.Config.SessionTransport == config.SessionTransportHeader {
		return bearerToken(c.Get(fiber.HeaderAuthorization))
	}
	return c.Cookies(SessionCookieName)
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetUser extracts user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// UserFromContext extracts the authenticated user from a Go context.
func UserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
