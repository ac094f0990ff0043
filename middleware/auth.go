package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/database"
	"github.com/plantnet/plantnet-server/models"
	"github.com/plantnet/plantnet-server/utils"
)

const (
	// TokenCookie carries the signed credential.
	TokenCookie = "token"

	callerEmailKey = "callerEmail"
)

// Auth verifies the credential cookie and gates routes by role.
type Auth struct {
	tokens *utils.TokenService
	users  database.UserRepository
	logger *zap.Logger
}

func NewAuth(tokens *utils.TokenService, users database.UserRepository, logger *zap.Logger) *Auth {
	return &Auth{tokens: tokens, users: users, logger: logger}
}

// VerifyToken rejects requests without a valid credential and records the
// caller's email on the context.
func (a *Auth) VerifyToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(TokenCookie)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized access"})
		}

		claims, err := a.tokens.ValidateJWT(cookie.Value)
		if err != nil {
			a.logger.Debug("rejected credential", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized access"})
		}

		c.Set(callerEmailKey, claims.Email)
		return next(c)
	}
}

// RequireRole must be used AFTER VerifyToken. It loads the caller's user
// record and rejects the request unless its role matches.
func (a *Auth) RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := CallerEmail(c)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized access"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), database.QueryTimeout)
			defer cancel()

			user, err := a.users.FindUserByEmail(ctx, email)
			if errors.Is(err, database.ErrNotFound) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden Access! " + string(role) + " only actions!"})
			}
			if err != nil {
				a.logger.Error("role lookup failed", zap.String("email", email), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to verify role"})
			}
			if user.Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden Access! " + string(role) + " only actions!"})
			}
			return next(c)
		}
	}
}

func (a *Auth) RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return a.RequireRole(models.RoleSeller)(next)
}

func (a *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.RequireRole(models.RoleAdmin)(next)
}

// CallerEmail returns the verified email set by VerifyToken, or "".
func CallerEmail(c echo.Context) string {
	email, _ := c.Get(callerEmailKey).(string)
	return email
}
