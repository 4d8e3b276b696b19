package consultant

import (
	"context"

	"github.com/labstack/echo/v4"

	"esn-planner/core/database"
	"esn-planner/modules/consultant/controller"
	"esn-planner/modules/consultant/repository"
	"esn-planner/modules/consultant/router"
	"esn-planner/modules/consultant/service"
	notifService "esn-planner/modules/notification/service"
)

// Init wires the consultant module, loads the roster and returns the service
// for the presence module.
func Init(e *echo.Echo, db database.Database, notifier notifService.Notifier) service.ConsultantServiceInterface {
	repo := repository.NewConsultantRepository(db)
	svc := service.NewConsultantService(repo, notifier)
	consultantController := controller.NewConsultantController(svc)

	// Startup load failures are reported through the notifier, never fatal.
	_ = svc.Load(context.Background())

	router.NewConsultantRouter(consultantController).Setup(e)
	return svc
}
