package router

import (
	"github.com/labstack/echo/v4"

	"esn-planner/modules/archive/controller"
)

type ArchiveRouter struct {
	controller *controller.ArchiveController
}

func NewArchiveRouter(controller *controller.ArchiveController) *ArchiveRouter {
	return &ArchiveRouter{controller: controller}
}

func (r *ArchiveRouter) Setup(e *echo.Echo) {
	group := e.Group("/api/v1/archives")
	group.POST("", r.controller.Enqueue)
	group.POST("/run", r.controller.Run)
}
