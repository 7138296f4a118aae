package bookings

import (
	"taxibe/internal/shared/config"
	"taxibe/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{controller: controller, config: cfg}
}

// SetupRoutes registers the booking endpoints. All of them require a
// logged-in passenger; the trip-scoped create sits under /trips to match
// the resource it books against.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := middleware.JWTAuthWithConfig(r.config)

	trips := rg.Group("/trips")
	trips.Use(auth)
	{
		trips.POST("/:id/bookings", r.controller.Create)
	}

	bookings := rg.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.GET("", r.controller.ListMine)
		bookings.GET("/:id", r.controller.Get)
		bookings.DELETE("/:id", r.controller.Cancel)
	}
}
