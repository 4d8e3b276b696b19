package controller

import (
	"time"

	"github.com/labstack/echo/v4"

	"esn-planner/core/controller"
	"esn-planner/core/errors"
	"esn-planner/modules/consultant/dto"
	"esn-planner/modules/consultant/entity"
	"esn-planner/modules/consultant/service"
)

// ConsultantController handles roster HTTP requests
type ConsultantController struct {
	controller.BaseController
	ConsultantService service.ConsultantServiceInterface
}

// NewConsultantController creates a new controller
func NewConsultantController(svc service.ConsultantServiceInterface) *ConsultantController {
	return &ConsultantController{
		BaseController:    controller.NewBaseController(),
		ConsultantService: svc,
	}
}

// GetConsultants handles GET /consultants
// @Summary List consultants
// @Description Returns the roster, optionally filtered by a name/role substring
// @Tags Consultant
// @Produce json
// @Param q query string false "Case-insensitive name/role filter"
// @Success 200 {array} dto.ConsultantResponse
// @Router /consultants [get]
func (c *ConsultantController) GetConsultants(ctx echo.Context) error {
	consultants := c.ConsultantService.Filter(ctx.QueryParam("q"))

	result := make([]dto.ConsultantResponse, 0, len(consultants))
	for i := range consultants {
		result = append(result, *dto.ToConsultantResponse(&consultants[i]))
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// AddConsultant handles POST /consultants
// @Summary Add a consultant
// @Description Adds a roster member; name and role must be non-blank
// @Tags Consultant
// @Accept json
// @Produce json
// @Param request body dto.AddConsultantRequest true "Consultant details"
// @Success 200 {object} dto.ConsultantResponse
// @Failure 400 {object} errors.AppError
// @Router /consultants [post]
func (c *ConsultantController) AddConsultant(ctx echo.Context) error {
	var req dto.AddConsultantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	consultant, appErr := c.ConsultantService.Add(ctx.Request().Context(), req.Name, req.Role)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.ToConsultantResponse(consultant), "Consultant ajouté")
}

// ReplaceRoster handles PUT /consultants
// @Summary Replace the roster
// @Description Replaces the full consultant list
// @Tags Consultant
// @Accept json
// @Produce json
// @Param request body dto.ReplaceRosterRequest true "Full roster"
// @Success 200 {array} dto.ConsultantResponse
// @Failure 400 {object} errors.AppError
// @Router /consultants [put]
func (c *ConsultantController) ReplaceRoster(ctx echo.Context) error {
	var req dto.ReplaceRosterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	now := time.Now()
	consultants := make([]entity.Consultant, 0, len(req.Consultants))
	for _, item := range req.Consultants {
		consultants = append(consultants, entity.Consultant{
			ID:        item.ID,
			Name:      item.Name,
			Role:      item.Role,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if appErr := c.ConsultantService.ReplaceAll(ctx.Request().Context(), consultants); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.GetConsultants(ctx)
}
