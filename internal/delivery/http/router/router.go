// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Account routes, open to anyone
	userGroup := api.Group("/users")
	{
		userGroup.POST("/signup", r.userHandler.Signup)
		userGroup.POST("/login", r.userHandler.Login)
	}

	// Catalog: public reads, admin-gated mutations
	productGroup := api.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)

		adminOnly := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireAdmin,
		}
		productGroup.POST("", r.productHandler.CreateProduct, adminOnly...)
		productGroup.PUT("/:id", r.productHandler.UpdateProduct, adminOnly...)
		productGroup.DELETE("/:id", r.productHandler.DeleteProduct, adminOnly...)
	}

	// Cart and checkout, for any authenticated user
	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/add", r.cartHandler.AddToCart)
		cartGroup.POST("/remove", r.cartHandler.RemoveFromCart)
		cartGroup.POST("/checkout", r.orderHandler.Checkout)
	}
}
