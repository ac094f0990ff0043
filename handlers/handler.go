package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/config"
	"github.com/plantnet/plantnet-server/database"
	"github.com/plantnet/plantnet-server/utils"
)

// Notifications accepts messages for best-effort background delivery.
type Notifications interface {
	Enqueue(msg utils.Notification) bool
}

// Handler serves every API route over an injected store and its bridges.
type Handler struct {
	store         database.Store
	tokens        *utils.TokenService
	notifications Notifications
	payments      utils.PaymentProcessor
	metrics       *utils.Metrics
	logger        *zap.Logger
	production    bool
}

func NewHandler(
	cfg *config.Config,
	store database.Store,
	tokens *utils.TokenService,
	notifications Notifications,
	payments utils.PaymentProcessor,
	metrics *utils.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		store:         store,
		tokens:        tokens,
		notifications: notifications,
		payments:      payments,
		metrics:       metrics,
		logger:        logger,
		production:    cfg.IsProduction(),
	}
}

func queryContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), database.QueryTimeout)
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// storeFailure answers with 404 for ErrNotFound and a logged 500 otherwise.
func (h *Handler) storeFailure(c echo.Context, err error, notFoundMsg, failMsg string) error {
	if errors.Is(err, database.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, notFoundMsg)
	}
	h.logger.Error(failMsg,
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return errorJSON(c, http.StatusInternalServerError, failMsg)
}

func parseObjectID(c echo.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	return id, err == nil
}

// bindAndValidate decodes the body into dst and runs its validate tags.
// The returned *echo.HTTPError is rendered by the error handler.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
