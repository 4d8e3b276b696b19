package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"esn-planner/core/constants"
	"esn-planner/core/logger"
	"esn-planner/core/utils"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// RequestID attaches a short random id to every request for log correlation.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-ID")
			if id == "" {
				id = utils.GenerateID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set("X-Request-ID", id)
			return next(c)
		}
	}
}

// RequestLogger logs method, path, status and latency for every request.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			requestID, _ := c.Get(constants.ContextRequestID).(string)
			logger.Info("http request",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
