package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/middleware"
)

type issueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken signs a credential for the email and sets it as the auth cookie.
func (h *Handler) IssueToken(c echo.Context) error {
	var req issueTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.tokens.GenerateJWT(req.Email)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "Failed to generate token")
	}

	c.SetCookie(h.authCookie(token, int(h.tokens.TTL().Seconds())))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Logout expires the auth cookie.
func (h *Handler) Logout(c echo.Context) error {
	cookie := h.authCookie("", -1)
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) authCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	if maxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	return cookie
}
