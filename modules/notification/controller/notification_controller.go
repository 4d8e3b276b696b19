package controller

import (
	"github.com/labstack/echo/v4"

	"esn-planner/core/controller"
	"esn-planner/core/errors"
	"esn-planner/core/params"
	"esn-planner/modules/notification/dto"
	"esn-planner/modules/notification/service"
)

type NotificationController struct {
	service *service.NotificationService
	controller.BaseController
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetNotifications retrieves the toast feed
// @Summary List notifications
// @Description Returns the notification feed, newest first
// @Tags Notification
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	queryParams := params.FromEcho(ctx)
	result, err := c.service.List(ctx.Request().Context(), queryParams)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to get notifications")
	}

	return c.SuccessResponse(ctx, result, "Notifications retrieved successfully")
}

// MarkAsRead marks specific notifications as read
// @Summary Mark notifications as read
// @Description Marks the given notification ids as read
// @Tags Notification
// @Accept json
// @Produce json
// @Param request body dto.MarkAsReadRequest true "Notification ids"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /notifications/mark-read [put]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if err := c.service.MarkAsRead(ctx.Request().Context(), req.IDs); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to mark as read")
	}

	return c.SuccessResponse(ctx, nil, "Marked as read successfully")
}

// MarkAllAsRead marks every notification as read
// @Summary Mark all notifications as read
// @Tags Notification
// @Produce json
// @Success 200 {object} map[string]string
// @Router /notifications/mark-all-read [put]
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	if err := c.service.MarkAllAsRead(ctx.Request().Context()); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to mark all as read")
	}

	return c.SuccessResponse(ctx, nil, "Marked all as read successfully")
}

// CountUnread counts unread notifications
// @Summary Count unread notifications
// @Tags Notification
// @Produce json
// @Success 200 {object} map[string]int
// @Router /notifications/unread-count [get]
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	count, err := c.service.CountUnread(ctx.Request().Context())
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to count unread")
	}

	return c.SuccessResponse(ctx, map[string]int{"count": count}, "Unread count retrieved")
}
