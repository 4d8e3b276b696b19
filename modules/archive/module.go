package archive

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"esn-planner/core/queue"
	"esn-planner/core/storage"
	"esn-planner/modules/archive/controller"
	"esn-planner/modules/archive/router"
	"esn-planner/modules/archive/service"
	presenceService "esn-planner/modules/presence/service"
)

// Init wires the archive module and registers its background task handler.
func Init(
	e *echo.Echo,
	mux *asynq.ServeMux,
	client *asynq.Client,
	store storage.ObjectStorage,
	presence presenceService.PresenceServiceInterface,
) service.ArchiveServiceInterface {
	svc := service.NewArchiveService(presence, store, client)
	ctrl := controller.NewArchiveController(svc)

	router.NewArchiveRouter(ctrl).Setup(e)
	mux.HandleFunc(queue.TaskCalendarExport, svc.HandleExportTask)

	return svc
}
