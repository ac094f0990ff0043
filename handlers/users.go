package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/models"
)

type registerUserRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// RegisterUser stores the user on first sign-in and returns the stored
// record on every later call, leaving role and status untouched.
func (h *Handler) RegisterUser(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return errorJSON(c, http.StatusBadRequest, "Email is required")
	}

	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	user, err := h.store.RegisterUser(ctx, models.User{
		Email:     email,
		Name:      req.Name,
		Image:     req.Image,
		Role:      models.RoleCustomer,
		Status:    models.UserStatusNone,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return h.storeFailure(c, err, "User not found", "Failed to register user")
	}
	return c.JSON(http.StatusOK, user)
}

// RequestSellerRole marks the user as waiting for seller approval.
func (h *Handler) RequestSellerRole(c echo.Context) error {
	email := c.Param("email")

	ctx, cancel := queryContext(c)
	defer cancel()

	user, err := h.store.FindUserByEmail(ctx, email)
	if err != nil {
		return h.storeFailure(c, err, "User not found", "Failed to fetch user")
	}
	if user.Status == models.UserStatusRequested {
		return errorJSON(c, http.StatusBadRequest, "You have already requested, wait for some time.")
	}

	if err := h.store.SetUserStatus(ctx, email, models.UserStatusRequested); err != nil {
		return h.storeFailure(c, err, "User not found", "Failed to update status")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(models.UserStatusRequested)})
}

func (h *Handler) GetUserRole(c echo.Context) error {
	ctx, cancel := queryContext(c)
	defer cancel()

	user, err := h.store.FindUserByEmail(ctx, c.Param("email"))
	if err != nil {
		return h.storeFailure(c, err, "User not found", "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, map[string]string{"role": string(user.Role)})
}

type setRoleRequest struct {
	Role models.Role `json:"role" validate:"required"`
}

// SetUserRole grants a role and marks the user Verified.
func (h *Handler) SetUserRole(c echo.Context) error {
	var req setRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !req.Role.Valid() {
		return errorJSON(c, http.StatusBadRequest, "Invalid role")
	}

	email := c.Param("email")
	ctx, cancel := queryContext(c)
	defer cancel()

	if err := h.store.SetUserRole(ctx, email, req.Role); err != nil {
		return h.storeFailure(c, err, "User not found", "Failed to update role")
	}
	user, err := h.store.FindUserByEmail(ctx, email)
	if err != nil {
		return h.storeFailure(c, err, "User not found", "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers returns every user except the one named in the path, normally
// the admin making the request.
func (h *Handler) ListUsers(c echo.Context) error {
	ctx, cancel := queryContext(c)
	defer cancel()

	users, err := h.store.ListUsersExcept(ctx, c.Param("email"))
	if err != nil {
		return h.storeFailure(c, err, "Users not found", "Failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}

// AdminStats reports user, plant and order counts plus total revenue.
func (h *Handler) AdminStats(c echo.Context) error {
	ctx, cancel := queryContext(c)
	defer cancel()

	var stats models.AdminStats
	var err error
	if stats.TotalUser, err = h.store.CountUsers(ctx); err != nil {
		return h.storeFailure(c, err, "Stats not found", "Failed to count users")
	}
	if stats.TotalPlants, err = h.store.CountPlants(ctx); err != nil {
		return h.storeFailure(c, err, "Stats not found", "Failed to count plants")
	}
	stats.TotalOrder, stats.TotalRevenue, err = h.store.OrderTotals(ctx)
	if err != nil {
		return h.storeFailure(c, err, "Stats not found", "Failed to total orders")
	}
	return c.JSON(http.StatusOK, stats)
}
