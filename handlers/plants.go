package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/plantnet/plantnet-server/middleware"
	"github.com/plantnet/plantnet-server/models"
)

// CreatePlant lists a new plant under the calling seller.
func (h *Handler) CreatePlant(c echo.Context) error {
	var plant models.Plant
	if err := bindAndValidate(c, &plant); err != nil {
		return err
	}
	plant.ID = primitive.NilObjectID
	plant.Seller.Email = middleware.CallerEmail(c)

	ctx, cancel := queryContext(c)
	defer cancel()

	if err := h.store.InsertPlant(ctx, &plant); err != nil {
		return h.storeFailure(c, err, "Plant not found", "Failed to create plant")
	}
	return c.JSON(http.StatusCreated, plant)
}

func (h *Handler) GetPlants(c echo.Context) error {
	ctx, cancel := queryContext(c)
	defer cancel()

	plants, err := h.store.ListPlants(ctx)
	if err != nil {
		return h.storeFailure(c, err, "Plants not found", "Failed to fetch plants")
	}
	return c.JSON(http.StatusOK, plants)
}

func (h *Handler) GetPlant(c echo.Context) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid plant ID")
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	plant, err := h.store.FindPlant(ctx, id)
	if err != nil {
		return h.storeFailure(c, err, "Plant not found", "Failed to fetch plant")
	}
	return c.JSON(http.StatusOK, plant)
}

// GetSellerPlants lists the plants owned by the caller.
func (h *Handler) GetSellerPlants(c echo.Context) error {
	ctx, cancel := queryContext(c)
	defer cancel()

	plants, err := h.store.ListPlantsBySeller(ctx, middleware.CallerEmail(c))
	if err != nil {
		return h.storeFailure(c, err, "Plants not found", "Failed to fetch plants")
	}
	return c.JSON(http.StatusOK, plants)
}

// DeletePlant removes a plant owned by the caller. Plants of other sellers
// are reported as missing.
func (h *Handler) DeletePlant(c echo.Context) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid plant ID")
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	if err := h.store.DeletePlant(ctx, id, middleware.CallerEmail(c)); err != nil {
		return h.storeFailure(c, err, "Plant not found", "Failed to delete plant")
	}
	return c.JSON(http.StatusOK, map[string]int{"deletedCount": 1})
}

const quantityDecrease = "decrease"

type updateQuantityRequest struct {
	QuantityToUpdate int    `json:"quantityToUpdate" validate:"gt=0"`
	Status           string `json:"status" validate:"oneof=increase decrease"`
}

// UpdatePlantQuantity adds or subtracts stock. Going below zero is allowed.
func (h *Handler) UpdatePlantQuantity(c echo.Context) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid plant ID")
	}

	var req updateQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	delta := req.QuantityToUpdate
	if req.Status == quantityDecrease {
		delta = -delta
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	if err := h.store.AdjustPlantQuantity(ctx, id, delta); err != nil {
		return h.storeFailure(c, err, "Plant not found", "Failed to update quantity")
	}
	plant, err := h.store.FindPlant(ctx, id)
	if err != nil {
		return h.storeFailure(c, err, "Plant not found", "Failed to fetch plant")
	}
	return c.JSON(http.StatusOK, plant)
}
