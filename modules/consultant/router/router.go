package router

import (
	"github.com/labstack/echo/v4"

	"esn-planner/modules/consultant/controller"
)

type ConsultantRouter struct {
	controller *controller.ConsultantController
}

func NewConsultantRouter(controller *controller.ConsultantController) *ConsultantRouter {
	return &ConsultantRouter{
		controller: controller,
	}
}

func (r *ConsultantRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	consultantRoutes := v1.Group("/consultants")
	consultantRoutes.GET("", r.controller.GetConsultants)
	consultantRoutes.POST("", r.controller.AddConsultant)
	consultantRoutes.PUT("", r.controller.ReplaceRoster)
}
