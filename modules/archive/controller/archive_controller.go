package controller

import (
	"github.com/labstack/echo/v4"

	"esn-planner/core/controller"
	"esn-planner/core/errors"
	"esn-planner/modules/archive/dto"
	"esn-planner/modules/archive/service"
)

// ArchiveController handles archive requests
type ArchiveController struct {
	controller.BaseController
	ArchiveService service.ArchiveServiceInterface
}

// NewArchiveController creates a new controller
func NewArchiveController(svc service.ArchiveServiceInterface) *ArchiveController {
	return &ArchiveController{
		BaseController: controller.NewBaseController(),
		ArchiveService: svc,
	}
}

// Enqueue handles POST /archives
// @Summary Queue a calendar archival run
// @Description Enqueues a background task that uploads the export for the given period to object storage
// @Tags Archives
// @Accept json
// @Produce json
// @Param request body dto.ArchiveRequest true "Period to archive"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /archives [post]
func (c *ArchiveController) Enqueue(ctx echo.Context) error {
	var req dto.ArchiveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.Year <= 0 || req.Month < 1 || req.Month > 12 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid period")
	}

	if appErr := c.ArchiveService.Enqueue(ctx.Request().Context(), req.Year, req.Month); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Archivage planifié")
}

// Run handles POST /archives/run
// @Summary Archive a period immediately
// @Description Exports the presence map and uploads it synchronously, bypassing the queue
// @Tags Archives
// @Accept json
// @Produce json
// @Param request body dto.ArchiveRequest true "Period to archive"
// @Success 200 {object} dto.ArchiveResponse
// @Failure 400 {object} errors.AppError
// @Router /archives/run [post]
func (c *ArchiveController) Run(ctx echo.Context) error {
	var req dto.ArchiveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.Year <= 0 || req.Month < 1 || req.Month > 12 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid period")
	}

	key, appErr := c.ArchiveService.Archive(ctx.Request().Context(), req.Year, req.Month)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ArchiveResponse{Key: key}, "Calendrier archivé")
}
