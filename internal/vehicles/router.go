package vehicles

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
	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("", r.controller.List)
		vehicles.GET("/:id", r.controller.Get)
	}
}

func (r *Router) SetupAdminRoutes(rg *gin.RouterGroup) {
	vehicles := rg.Group("/vehicles")
	vehicles.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		vehicles.POST("", r.controller.Create)
		vehicles.PUT("/:id", r.controller.Update)
		vehicles.DELETE("/:id", r.controller.Delete)
	}
}
