package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler renders every error returned by a handler or by echo
// itself as {"error": "..."}; unexpected errors become a logged 500.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "Internal server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			msg = fmt.Sprint(httpErr.Message)
			if httpErr.Internal != nil {
				err = httpErr.Internal
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("unhandled error",
				zap.String("path", c.Request().URL.Path),
				zap.String("method", c.Request().Method),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]string{"error": msg})
		}
		if err != nil {
			logger.Warn("write error response", zap.Error(err))
		}
	}
}
