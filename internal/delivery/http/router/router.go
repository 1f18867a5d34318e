// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tasklist/internal/delivery/http/middleware"
	"tasklist/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	TodoHandler    *handler.TodoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	todoHandler    *handler.TodoHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		todoHandler:    params.TodoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account and session routes
	e.POST("/register", r.userHandler.Register)
	e.POST("/authentications", r.userHandler.Login)
	e.PUT("/authentications", r.userHandler.Refresh)
	e.DELETE("/authentications", r.userHandler.Logout, r.authMiddleware.Authenticate)

	// Todo routes, all behind authentication. The reorder route is static
	// and must be registered before the :id routes.
	todoGroup := e.Group("/todos")
	todoGroup.Use(r.authMiddleware.Authenticate)
	{
		todoGroup.POST("", r.todoHandler.Create)
		todoGroup.GET("", r.todoHandler.List)
		todoGroup.PUT("/reorder", r.todoHandler.Reorder)
		todoGroup.GET("/:id", r.todoHandler.Get)
		todoGroup.PUT("/:id", r.todoHandler.Update)
		todoGroup.DELETE("/:id", r.todoHandler.Delete)
	}
}
