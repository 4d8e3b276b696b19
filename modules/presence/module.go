package presence

import (
	"context"

	"github.com/labstack/echo/v4"

	"esn-planner/core/cache"
	"esn-planner/core/database"
	calendarService "esn-planner/modules/calendar/service"
	consultantService "esn-planner/modules/consultant/service"
	notifService "esn-planner/modules/notification/service"
	"esn-planner/modules/presence/controller"
	"esn-planner/modules/presence/repository"
	"esn-planner/modules/presence/router"
	"esn-planner/modules/presence/service"
)

// Init wires the presence module. The map is loaded once at startup and kept
// in memory; the repository only mirrors it.
func Init(
	e *echo.Echo,
	db database.Database,
	c cache.Cache,
	consultants consultantService.ConsultantServiceInterface,
	engine *calendarService.DateEngine,
	notifier notifService.Notifier,
) service.PresenceServiceInterface {
	repo := repository.NewPresenceRepository(db)
	svc := service.NewPresenceService(repo, consultants, engine, notifier)
	_ = svc.Load(context.Background())

	sessions := service.NewGridSessionManager(c, svc)

	presenceCtrl := controller.NewPresenceController(svc, engine)
	sessionCtrl := controller.NewSessionController(sessions)
	router.NewPresenceRouter(presenceCtrl, sessionCtrl).Setup(e)

	return svc
}
