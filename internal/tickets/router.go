package tickets

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

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	tickets := rg.Group("/tickets")
	tickets.Use(middleware.JWTAuthWithConfig(r.config))
	{
		tickets.GET("", r.controller.ListMine)
		tickets.GET("/:id", r.controller.Get)
		tickets.GET("/:id/pdf", r.controller.ExportPDF)
	}
}
