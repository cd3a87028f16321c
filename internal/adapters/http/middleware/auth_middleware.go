package middleware

import (
	"strings"

	"nobus-loanhub/internal/adapters/persistence/models"
	"nobus-loanhub/internal/core/services"
	"nobus-loanhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware
const (
	LocalsUser   = "user"
	LocalsUserID = "userID"
)

// unauthorizedMessage is the one body every authentication or
// authorization failure produces. Missing token, bad signature,
// expired token, wrong token type, unknown or inactive subject and
// insufficient privilege are deliberately indistinguishable to the
// caller.
const unauthorizedMessage = "Unauthorized"

// AuthMiddleware resolves the bearer token to an active user and
// stores it in request locals
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authService.Authenticate(c.Context(), BearerToken(c))
		if err != nil {
			return response.Unauthorized(c, unauthorizedMessage)
		}

		c.Locals(LocalsUser, user)
		c.Locals(LocalsUserID, user.ID)

		return c.Next()
	}
}

// AdminOnly requires the already-resolved user to be staff. A valid
// non-staff login gets the same response as no login at all.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff {
			return response.Unauthorized(c, unauthorizedMessage)
		}
		return c.Next()
	}
}

// BearerToken extracts the token from the Authorization header
func BearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(LocalsUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}
