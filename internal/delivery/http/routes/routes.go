package routes

import (
	"course-match/internal/delivery/http/handler"
	"course-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health       *handler.HealthHandler
	availability *handler.AvailabilityHandler
	cacheAdmin   *handler.CacheAdminHandler
	auth         *middleware.AuthMiddleware
}

func NewRegistry(
	availability *handler.AvailabilityHandler,
	cacheAdmin *handler.CacheAdminHandler,
	auth *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:       handler.NewHealthHandler(),
		availability: availability,
		cacheAdmin:   cacheAdmin,
		auth:         auth,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	r.availability.RegisterRoutes(v1)

	admin := v1.Group("/admin")
	if r.auth != nil {
		admin.Use(r.auth.Middleware())
	}
	r.cacheAdmin.RegisterRoutes(admin)
}
