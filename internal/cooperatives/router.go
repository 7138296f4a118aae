package cooperatives

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
	coops := rg.Group("/cooperatives")
	{
		coops.GET("", r.controller.List)
		coops.GET("/:id", r.controller.Get)
	}
}

func (r *Router) SetupAdminRoutes(rg *gin.RouterGroup) {
	coops := rg.Group("/cooperatives")
	coops.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		coops.POST("", r.controller.Create)
		coops.PUT("/:id", r.controller.Update)
		coops.DELETE("/:id", r.controller.Delete)
	}
}
