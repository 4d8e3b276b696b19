package calendar

import (
	"github.com/labstack/echo/v4"

	"esn-planner/modules/calendar/controller"
	"esn-planner/modules/calendar/router"
	"esn-planner/modules/calendar/service"
)

// Init wires the calendar module and returns the date engine for the modules
// that build on it.
func Init(e *echo.Echo) *service.DateEngine {
	engine := service.NewDateEngine()
	calendarController := controller.NewCalendarController(engine)
	router.NewCalendarRouter(calendarController).Setup(e)
	return engine
}
