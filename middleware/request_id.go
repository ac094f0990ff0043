package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderXRequestID = echo.HeaderXRequestID
	requestIDKey     = "requestID"
)

// RequestID reuses the client's X-Request-ID or generates one, and echoes it
// on the response.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Response().Header().Set(HeaderXRequestID, requestID)
		return next(c)
	}
}

func GetRequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}
