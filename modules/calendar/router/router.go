package router

import (
	"github.com/labstack/echo/v4"

	"esn-planner/modules/calendar/controller"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		controller: controller,
	}
}

func (r *CalendarRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	calendarRoutes := v1.Group("/calendar")
	calendarRoutes.GET("/holidays/:year", r.controller.GetHolidays)
	calendarRoutes.GET("/month/:year/:month", r.controller.GetMonth)
	calendarRoutes.GET("/week", r.controller.GetWeek)
	calendarRoutes.GET("/two-weeks", r.controller.GetTwoWeeks)
}
