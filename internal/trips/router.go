package trips

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

func (r *Router) SetupPublicRoutes(rg *gin.RouterGroup) {
	trips := rg.Group("/trips")
	{
		trips.GET("", r.controller.Search)
		trips.GET("/:id", r.controller.Get)
		trips.GET("/:id/seats", r.controller.SeatMap)
	}
}

func (r *Router) SetupAdminRoutes(rg *gin.RouterGroup) {
	trips := rg.Group("/trips")
	trips.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		trips.POST("", r.controller.Create)
		trips.PATCH("/:id/status", r.controller.UpdateStatus)
	}
}
