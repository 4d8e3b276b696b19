package controller

import (
	"github.com/labstack/echo/v4"

	"esn-planner/core/controller"
	"esn-planner/core/errors"
	"esn-planner/modules/presence/dto"
	"esn-planner/modules/presence/service"
)

// SessionController handles grid selection session requests
type SessionController struct {
	controller.BaseController
	Sessions *service.GridSessionManager
}

// NewSessionController creates a new controller
func NewSessionController(sessions *service.GridSessionManager) *SessionController {
	return &SessionController{
		BaseController: controller.NewBaseController(),
		Sessions:       sessions,
	}
}

// Create handles POST /presence/sessions
// @Summary Open a grid selection session
// @Tags Sessions
// @Produce json
// @Success 200 {object} service.GridSession
// @Router /presence/sessions [post]
func (c *SessionController) Create(ctx echo.Context) error {
	session, appErr := c.Sessions.Create(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, session, "Success")
}

// Get handles GET /presence/sessions/:id
// @Summary Read a grid selection session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} service.GridSession
// @Failure 404 {object} errors.AppError
// @Router /presence/sessions/{id} [get]
func (c *SessionController) Get(ctx echo.Context) error {
	session, appErr := c.Sessions.Get(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, session, "Success")
}

// ToggleRangeMode handles POST /presence/sessions/:id/toggle-range
// @Summary Toggle range selection mode
// @Description Turning range mode off also clears any pending selection
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} service.GridSession
// @Failure 404 {object} errors.AppError
// @Router /presence/sessions/{id}/toggle-range [post]
func (c *SessionController) ToggleRangeMode(ctx echo.Context) error {
	session, appErr := c.Sessions.ToggleRangeMode(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, session, "Success")
}

// Click handles POST /presence/sessions/:id/click
// @Summary Click a grid cell
// @Description Advances the selection state machine for the clicked cell
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body dto.ClickCellRequest true "Clicked cell"
// @Success 200 {object} service.GridSession
// @Failure 400 {object} errors.AppError
// @Router /presence/sessions/{id}/click [post]
func (c *SessionController) Click(ctx echo.Context) error {
	var req dto.ClickCellRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	cell := service.CellRef{ConsultantID: req.ConsultantID, Date: req.Date}
	session, appErr := c.Sessions.ClickCell(ctx.Request().Context(), ctx.Param("id"), cell)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, session, "Success")
}

// Save handles POST /presence/sessions/:id/save
// @Summary Save the entry form for the current selection
// @Description Writes the entry to the selected cell or range and closes the form
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body dto.SessionSaveRequest true "Entry form"
// @Success 200 {object} service.GridSession
// @Failure 400 {object} errors.AppError
// @Router /presence/sessions/{id}/save [post]
func (c *SessionController) Save(ctx echo.Context) error {
	var req dto.SessionSaveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	session, appErr := c.Sessions.Save(ctx.Request().Context(), ctx.Param("id"), req.Entry.ToEntry())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, session, "Présence enregistrée")
}

// Delete handles POST /presence/sessions/:id/delete
// @Summary Delete the entries under the current selection
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} service.GridSession
// @Failure 400 {object} errors.AppError
// @Router /presence/sessions/{id}/delete [post]
func (c *SessionController) Delete(ctx echo.Context) error {
	session, appErr := c.Sessions.Delete(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, session, "Présence supprimée")
}

// Cancel handles POST /presence/sessions/:id/cancel
// @Summary Close the entry form without saving
// @Description Closes the form; the pending selection is kept
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} service.GridSession
// @Failure 404 {object} errors.AppError
// @Router /presence/sessions/{id}/cancel [post]
func (c *SessionController) Cancel(ctx echo.Context) error {
	session, appErr := c.Sessions.Cancel(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, session, "Success")
}
