package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/database"
	"github.com/plantnet/plantnet-server/middleware"
	"github.com/plantnet/plantnet-server/models"
	"github.com/plantnet/plantnet-server/utils"
)

// CreateOrder stores the order and queues mail for the customer and the
// seller. Stock is adjusted by a separate quantity call from the client.
func (h *Handler) CreateOrder(c echo.Context) error {
	var order models.Order
	if err := bindAndValidate(c, &order); err != nil {
		return err
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if !order.Status.Valid() {
		return errorJSON(c, http.StatusBadRequest, "Invalid order status")
	}
	order.ID = primitive.NilObjectID
	order.Customer.Email = middleware.CallerEmail(c)

	ctx, cancel := queryContext(c)
	defer cancel()

	if err := h.store.InsertOrder(ctx, &order); err != nil {
		return h.storeFailure(c, err, "Order not found", "Failed to create order")
	}

	h.notifyOrderPlaced(&order)
	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) notifyOrderPlaced(order *models.Order) {
	id := order.ID.Hex()
	messages := []utils.Notification{
		{
			To:      order.Customer.Email,
			Subject: "Order Successful",
			Message: "You've placed an order successfully. Transaction Id: " + id,
		},
		{
			To:      order.Seller,
			Subject: "Hurray!, You have an order to process.",
			Message: "Get the plants ready for " + id,
		},
	}
	for _, msg := range messages {
		if !h.notifications.Enqueue(msg) {
			h.logger.Warn("order notification not queued",
				zap.String("order_id", id), zap.String("to", msg.To))
		}
	}
}

// GetCustomerOrders lists the customer's orders joined with plant details.
func (h *Handler) GetCustomerOrders(c echo.Context) error {
	ctx, cancel := queryContext(c)
	defer cancel()

	orders, err := h.store.ListCustomerOrders(ctx, c.Param("email"))
	if err != nil {
		return h.storeFailure(c, err, "Orders not found", "Failed to fetch orders")
	}
	return c.JSON(http.StatusOK, orders)
}

// GetSellerOrders lists orders placed with the calling seller joined with
// plant details. The path email is not trusted; the token identity is used.
func (h *Handler) GetSellerOrders(c echo.Context) error {
	ctx, cancel := queryContext(c)
	defer cancel()

	orders, err := h.store.ListSellerOrders(ctx, middleware.CallerEmail(c))
	if err != nil {
		return h.storeFailure(c, err, "Orders not found", "Failed to fetch orders")
	}
	return c.JSON(http.StatusOK, orders)
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !req.Status.Valid() {
		return errorJSON(c, http.StatusBadRequest, "Invalid order status")
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	if err := h.store.UpdateOrderStatus(ctx, id, req.Status); err != nil {
		return h.storeFailure(c, err, "Order not found", "Failed to update order")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(req.Status)})
}

// CancelOrder deletes an order that has not been delivered yet.
func (h *Handler) CancelOrder(c echo.Context) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid order ID")
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	err := h.store.CancelOrder(ctx, id)
	if errors.Is(err, database.ErrOrderDelivered) {
		return errorJSON(c, http.StatusConflict, "Cannot cancel once the product is delivered!")
	}
	if err != nil {
		return h.storeFailure(c, err, "Order not found", "Failed to cancel order")
	}
	return c.JSON(http.StatusOK, map[string]int{"deletedCount": 1})
}
