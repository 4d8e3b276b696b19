package controller

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"esn-planner/core/constants"
	"esn-planner/core/controller"
	"esn-planner/core/errors"
	"esn-planner/modules/calendar/dto"
	"esn-planner/modules/calendar/service"
)

// CalendarController exposes the date engine over HTTP.
type CalendarController struct {
	controller.BaseController
	Engine *service.DateEngine
}

// NewCalendarController creates a new controller
func NewCalendarController(engine *service.DateEngine) *CalendarController {
	return &CalendarController{
		BaseController: controller.NewBaseController(),
		Engine:         engine,
	}
}

// GetHolidays handles GET /calendar/holidays/:year
// @Summary Public holidays of a year
// @Description Returns the eleven French public holidays for the given year
// @Tags Calendar
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} dto.HolidaysResponse
// @Failure 400 {object} errors.AppError
// @Router /calendar/holidays/{year} [get]
func (c *CalendarController) GetHolidays(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < 1 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid year")
	}

	holidays := c.Engine.HolidaysForYear(year)
	resp := &dto.HolidaysResponse{Year: year, Holidays: make([]string, 0, len(holidays))}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, h.Format(constants.DateLayout))
	}

	return c.SuccessResponse(ctx, resp, "Success")
}

// GetMonth handles GET /calendar/month/:year/:month
// @Summary Days of a month
// @Description Returns every day of the month with weekend and holiday flags
// @Tags Calendar
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} dto.WindowResponse
// @Failure 400 {object} errors.AppError
// @Router /calendar/month/{year}/{month} [get]
func (c *CalendarController) GetMonth(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < 1 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid year")
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid month")
	}

	days := c.Engine.DaysInMonth(year, month-1)
	return c.SuccessResponse(ctx, c.toWindow(days), "Success")
}

// GetWeek handles GET /calendar/week
// @Summary Week containing a date
// @Description Returns the Monday-to-Sunday week containing the anchor date
// @Tags Calendar
// @Produce json
// @Param anchor query string true "Anchor date (YYYY-MM-DD)"
// @Success 200 {object} dto.WindowResponse
// @Failure 400 {object} errors.AppError
// @Router /calendar/week [get]
func (c *CalendarController) GetWeek(ctx echo.Context) error {
	anchor, err := time.Parse(constants.DateLayout, ctx.QueryParam("anchor"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid anchor date")
	}
	return c.SuccessResponse(ctx, c.toWindow(c.Engine.WeekDays(anchor)), "Success")
}

// GetTwoWeeks handles GET /calendar/two-weeks
// @Summary Two weeks from a date
// @Description Returns fourteen consecutive days starting at the anchor's Monday
// @Tags Calendar
// @Produce json
// @Param anchor query string true "Anchor date (YYYY-MM-DD)"
// @Success 200 {object} dto.WindowResponse
// @Failure 400 {object} errors.AppError
// @Router /calendar/two-weeks [get]
func (c *CalendarController) GetTwoWeeks(ctx echo.Context) error {
	anchor, err := time.Parse(constants.DateLayout, ctx.QueryParam("anchor"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid anchor date")
	}
	return c.SuccessResponse(ctx, c.toWindow(c.Engine.TwoWeekDays(anchor)), "Success")
}

func (c *CalendarController) toWindow(days []time.Time) *dto.WindowResponse {
	resp := &dto.WindowResponse{Days: make([]dto.DayResponse, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, dto.DayResponse{
			Date:      d.Format(constants.DateLayout),
			DayName:   c.Engine.DayName(d),
			MonthName: c.Engine.MonthName(d),
			IsWeekend: c.Engine.IsWeekend(d),
			IsHoliday: c.Engine.IsHoliday(d),
		})
	}
	return resp
}
