package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Hello from plantNet Server..")
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
