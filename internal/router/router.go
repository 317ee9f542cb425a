package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inventra/internal/db"
	"inventra/internal/handler"
	"inventra/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	store *db.Mongo,
	locationHandler *handler.LocationHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	supplierHandler *handler.SupplierHandler,
	transactionHandler *handler.TransactionHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "store unreachable")
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Location routes
	e.POST("/locations/", locationHandler.Create)
	e.GET("/locations/", locationHandler.List)
	e.GET("/locations/:id/", locationHandler.Get)
	e.PUT("/locations/:id/", locationHandler.Update)
	e.DELETE("/locations/:id/", locationHandler.Delete)

	// Product routes; search/metrics/sort must precede the id parameter in
	// intent, echo matches static segments first anyway
	e.POST("/products/", productHandler.Create)
	e.GET("/products/", productHandler.List)
	e.GET("/products/search/", productHandler.Search)
	e.GET("/products/metrics/", productHandler.Metrics)
	e.GET("/products/sort/", productHandler.Sort)
	e.GET("/products/:id/", productHandler.Get)
	e.PUT("/products/:id/", productHandler.Update)
	e.DELETE("/products/:id/", productHandler.Delete)

	// Category routes
	e.POST("/categories/", categoryHandler.Create)
	e.GET("/categories/", categoryHandler.List)
	e.GET("/categories/:id/", categoryHandler.Get)
	e.PUT("/categories/:id/", categoryHandler.Update)
	e.DELETE("/categories/:id/", categoryHandler.Delete)

	// Supplier routes
	e.POST("/suppliers/", supplierHandler.Create)
	e.GET("/suppliers/", supplierHandler.List)
	e.GET("/suppliers/:id/", supplierHandler.Get)
	e.PUT("/suppliers/:id/", supplierHandler.Update)
	e.DELETE("/suppliers/:id/", supplierHandler.Delete)

	// Inventory transaction routes
	e.POST("/transactions/", transactionHandler.Create)
	e.GET("/transactions/", transactionHandler.List)
	e.GET("/transactions/:id/", transactionHandler.Get)
	e.PUT("/transactions/:id/", transactionHandler.Update)
	e.DELETE("/transactions/:id/", transactionHandler.Delete)

	// User routes
	e.POST("/users/", userHandler.Create)
	e.GET("/users/", userHandler.List)
	e.GET("/users/:id/", userHandler.Get)
	e.PUT("/users/:id/", userHandler.Update)
	e.DELETE("/users/:id/", userHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
