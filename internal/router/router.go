package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskhive/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes. Verify does its own token handling so it can answer with
	// the documented messages instead of the middleware's.
	r.POST("/auth/register", handlers.Auth.Register)
	r.POST("/auth/login", handlers.Auth.Login)
	r.GET("/auth/verify", handlers.Auth.Verify)

	// Task routes, all behind bearer-token verification.
	r.GET("/tasks", authMiddleware(handlers.Task.List))
	r.POST("/tasks", authMiddleware(handlers.Task.Create))
	r.PUT("/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/tasks/{id}", authMiddleware(handlers.Task.Delete))

	return r
}
