package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/database"
	"github.com/plantnet/plantnet-server/utils"
)

type paymentIntentRequest struct {
	Quantity int    `json:"quantity" validate:"gt=0"`
	PlantID  string `json:"plantId" validate:"required"`
}

// CreatePaymentIntent prices quantity units of the plant and returns the
// processor's client secret.
func (h *Handler) CreatePaymentIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	plantID, err := primitive.ObjectIDFromHex(req.PlantID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid plant ID")
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	plant, err := h.store.FindPlant(ctx, plantID)
	if errors.Is(err, database.ErrNotFound) {
		h.recordPayment("plant_not_found")
		return errorJSON(c, http.StatusNotFound, "Plant Not Found")
	}
	if err != nil {
		return h.storeFailure(c, err, "Plant Not Found", "Failed to fetch plant")
	}

	amount, err := utils.TotalInCents(plant.Price, req.Quantity)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	secret, err := h.payments.CreatePaymentIntent(ctx, amount, req.PlantID)
	if errors.Is(err, utils.ErrPaymentsDisabled) {
		h.recordPayment("disabled")
		return errorJSON(c, http.StatusServiceUnavailable, "Payments are not available")
	}
	if err != nil {
		h.recordPayment("failed")
		h.logger.Error("payment intent failed",
			zap.String("plant_id", req.PlantID),
			zap.Int64("amount_cents", amount),
			zap.Error(err),
		)
		return errorJSON(c, http.StatusBadGateway, "Failed to create payment intent")
	}

	h.recordPayment("created")
	return c.JSON(http.StatusOK, map[string]string{"client_secret": secret})
}

func (h *Handler) recordPayment(outcome string) {
	if h.metrics != nil {
		h.metrics.PaymentIntents.WithLabelValues(outcome).Inc()
	}
}
