package routes

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/handlers"
	customMiddleware "github.com/plantnet/plantnet-server/middleware"
	"github.com/plantnet/plantnet-server/utils"
)

// SetupMiddleware installs the global chain. Recover sits inside the logger
// and metrics so recovered panics are still logged and counted as 500s.
func SetupMiddleware(e *echo.Echo, allowedOrigins []string, logger *zap.Logger, metrics *utils.Metrics) {
	e.Use(customMiddleware.RequestID)
	e.Use(customMiddleware.RequestLogger(logger))
	e.Use(customMiddleware.Metrics(metrics))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
	}))
}

func SetupRoutes(e *echo.Echo, h *handlers.Handler, auth *customMiddleware.Auth, metrics *utils.Metrics) {
	verify := auth.VerifyToken
	seller := auth.RequireSeller
	admin := auth.RequireAdmin

	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Users
	e.POST("/users/:email", h.RegisterUser)
	e.PATCH("/user/updateStatus/:email", h.RequestSellerRole, verify)
	e.GET("/user/role/:email", h.GetUserRole, verify)
	e.PATCH("/user/role/:email", h.SetUserRole, verify, admin)
	e.GET("/all-users/:email", h.ListUsers, verify, admin)

	// Auth cookie
	e.POST("/jwt", h.IssueToken)
	e.GET("/logout", h.Logout)

	// Plants
	e.POST("/add-plant", h.CreatePlant, verify, seller)
	e.GET("/plants", h.GetPlants)
	e.GET("/plant/:id", h.GetPlant)
	e.GET("/plants/seller", h.GetSellerPlants, verify, seller)
	e.DELETE("/delete-plant/:id", h.DeletePlant, verify, seller)
	e.PATCH("/plant/quantity/:id", h.UpdatePlantQuantity, verify)

	// Orders
	e.POST("/order", h.CreateOrder, verify)
	e.GET("/orders/:email", h.GetCustomerOrders, verify)
	e.GET("/seller-orders/:email", h.GetSellerOrders, verify, seller)
	e.PATCH("/order/:id", h.UpdateOrderStatus, verify, seller)
	e.DELETE("/cancelOrder/:id", h.CancelOrder, verify)

	e.GET("/admin-stats", h.AdminStats, verify, admin)
	e.POST("/create-payment-intent", h.CreatePaymentIntent)
}
