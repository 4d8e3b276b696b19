package controller

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"esn-planner/core/constants"
	"esn-planner/core/controller"
	"esn-planner/core/errors"
	calendarService "esn-planner/modules/calendar/service"
	"esn-planner/modules/presence/dto"
	"esn-planner/modules/presence/service"
)

// PresenceController handles presence grid HTTP requests
type PresenceController struct {
	controller.BaseController
	PresenceService service.PresenceServiceInterface
	Engine          *calendarService.DateEngine
}

// NewPresenceController creates a new controller
func NewPresenceController(svc service.PresenceServiceInterface, engine *calendarService.DateEngine) *PresenceController {
	return &PresenceController{
		BaseController:  controller.NewBaseController(),
		PresenceService: svc,
		Engine:          engine,
	}
}

// UpsertCell handles POST /presence/entries
// @Summary Save a presence entry
// @Description Writes or overwrites the entry for one consultant-day cell
// @Tags Presence
// @Accept json
// @Produce json
// @Param request body dto.UpsertCellRequest true "Cell entry"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /presence/entries [post]
func (c *PresenceController) UpsertCell(ctx echo.Context) error {
	var req dto.UpsertCellRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	day, err := time.Parse(constants.DateLayout, req.Date)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date")
	}

	if appErr := c.PresenceService.Upsert(ctx.Request().Context(), req.ConsultantID, day, req.Entry.ToEntry()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Présence enregistrée")
}

// UpsertRange handles POST /presence/entries/range
// @Summary Save a presence entry over a date range
// @Description Writes the same entry to every day of the inclusive range
// @Tags Presence
// @Accept json
// @Produce json
// @Param request body dto.UpsertRangeRequest true "Range entry"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /presence/entries/range [post]
func (c *PresenceController) UpsertRange(ctx echo.Context) error {
	var req dto.UpsertRangeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	from, err := time.Parse(constants.DateLayout, req.StartDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start date")
	}
	to, err := time.Parse(constants.DateLayout, req.EndDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid end date")
	}

	if appErr := c.PresenceService.UpsertRange(ctx.Request().Context(), req.ConsultantID, from, to, req.Entry.ToEntry()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Période enregistrée")
}

// DeleteCell handles DELETE /presence/entries/:consultantId/:date
// @Summary Delete a presence entry
// @Description Removes the entry for one cell; deleting a missing entry is a no-op
// @Tags Presence
// @Produce json
// @Param consultantId path int true "Consultant id"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /presence/entries/{consultantId}/{date} [delete]
func (c *PresenceController) DeleteCell(ctx echo.Context) error {
	consultantID, err := strconv.Atoi(ctx.Param("consultantId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid consultant id")
	}
	day, err := time.Parse(constants.DateLayout, ctx.Param("date"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date")
	}

	if appErr := c.PresenceService.Delete(ctx.Request().Context(), consultantID, day); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Présence supprimée")
}

// DeleteRange handles DELETE /presence/entries/range
// @Summary Delete presence entries over a date range
// @Tags Presence
// @Produce json
// @Param consultant_id query int true "Consultant id"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /presence/entries/range [delete]
func (c *PresenceController) DeleteRange(ctx echo.Context) error {
	consultantID, err := strconv.Atoi(ctx.QueryParam("consultant_id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid consultant id")
	}
	from, err := time.Parse(constants.DateLayout, ctx.QueryParam("start_date"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start date")
	}
	to, err := time.Parse(constants.DateLayout, ctx.QueryParam("end_date"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid end date")
	}

	if appErr := c.PresenceService.DeleteRange(ctx.Request().Context(), consultantID, from, to); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Période supprimée")
}

// GetGrid handles GET /presence/grid
// @Summary Presence grid for a window
// @Description Returns the consultant-by-day cell matrix for a month, week or two-week window
// @Tags Presence
// @Produce json
// @Param view query string false "Window: month, week or two-weeks (default month)"
// @Param year query int false "Year (month view)"
// @Param month query int false "Month 1-12 (month view)"
// @Param anchor query string false "Anchor date (week views)"
// @Param q query string false "Consultant name/role filter"
// @Param only_with_entries query bool false "Only consultants with entries in the window"
// @Success 200 {object} dto.GridResponse
// @Failure 400 {object} errors.AppError
// @Router /presence/grid [get]
func (c *PresenceController) GetGrid(ctx echo.Context) error {
	days, appErr := c.windowDays(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	onlyWithEntries := ctx.QueryParam("only_with_entries") == "true"
	grid := c.PresenceService.GridView(days, ctx.QueryParam("q"), onlyWithEntries)
	return c.SuccessResponse(ctx, grid, "Success")
}

// Export handles GET /presence/export
// @Summary Download the presence map as JSON
// @Description Exports the full map, or one consultant's entries when consultant_id is set
// @Tags Presence
// @Produce application/json
// @Param year query int true "Displayed year"
// @Param month query int true "Displayed month (1-12)"
// @Param consultant_id query int false "Restrict to one consultant"
// @Success 200 {file} file
// @Failure 400 {object} errors.AppError
// @Router /presence/export [get]
func (c *PresenceController) Export(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.QueryParam("year"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid year")
	}
	month, err := strconv.Atoi(ctx.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid month")
	}

	var file *dto.ExportFile
	var appErr *errors.AppError
	if raw := ctx.QueryParam("consultant_id"); raw != "" {
		consultantID, err := strconv.Atoi(raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid consultant id")
		}
		file, appErr = c.PresenceService.ExportConsultant(consultantID, year, month)
	} else {
		file, appErr = c.PresenceService.Export(year, month)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, file.Filename))
	return ctx.Blob(200, echo.MIMEApplicationJSON, file.Data)
}

// Import handles POST /presence/import
// @Summary Import a presence map
// @Description Replaces the whole presence map with the uploaded export file
// @Tags Presence
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /presence/import [post]
func (c *PresenceController) Import(ctx echo.Context) error {
	data, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Unreadable request body")
	}

	if appErr := c.PresenceService.Import(ctx.Request().Context(), data); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendrier importé")
}

func (c *PresenceController) windowDays(ctx echo.Context) ([]time.Time, *errors.AppError) {
	view := ctx.QueryParam("view")
	if view == "" {
		view = "month"
	}

	switch view {
	case "month":
		year, err := strconv.Atoi(ctx.QueryParam("year"))
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid year", err)
		}
		month, err := strconv.Atoi(ctx.QueryParam("month"))
		if err != nil || month < 1 || month > 12 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid month", err)
		}
		return c.Engine.DaysInMonth(year, month-1), nil
	case "week", "two-weeks":
		anchor, err := time.Parse(constants.DateLayout, ctx.QueryParam("anchor"))
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid anchor date", err)
		}
		if view == "week" {
			return c.Engine.WeekDays(anchor), nil
		}
		return c.Engine.TwoWeekDays(anchor), nil
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid view", nil)
	}
}
