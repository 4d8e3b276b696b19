package notification

import (
	"github.com/labstack/echo/v4"

	"esn-planner/core/database"
	"esn-planner/modules/notification/controller"
	"esn-planner/modules/notification/repository"
	"esn-planner/modules/notification/router"
	"esn-planner/modules/notification/service"
)

// Init wires the notification module and returns the service so other modules
// can emit toasts through it.
func Init(e *echo.Echo, db database.Database) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e)

	return svc
}
