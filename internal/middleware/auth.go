package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MayankXDev13/ledger-x/pkg/jwtutil"
	"github.com/MayankXDev13/ledger-x/pkg/logger"
)

// AuthMiddleware validates the JWT token and extracts the user identity.
// Users are created and authenticated by an external system; this service
// only consumes the identity in the token.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			log.Error("JWT token carries malformed user_id",
				zap.String("user_id", claims.UserID),
				zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user identity in token"})
		}

		// Store user info in context for later use
		c.Set("user_id", userID)
		c.Set("email", claims.Email)

		return next(c)
	}
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
// Returns uuid.Nil, false if it is not present.
func GetUserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	return userID, ok
}
