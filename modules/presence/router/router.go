package router

import (
	"github.com/labstack/echo/v4"

	"esn-planner/modules/presence/controller"
)

type PresenceRouter struct {
	presence *controller.PresenceController
	sessions *controller.SessionController
}

func NewPresenceRouter(presence *controller.PresenceController, sessions *controller.SessionController) *PresenceRouter {
	return &PresenceRouter{presence: presence, sessions: sessions}
}

func (r *PresenceRouter) Setup(e *echo.Echo) {
	group := e.Group("/api/v1/presence")

	group.GET("/grid", r.presence.GetGrid)
	group.POST("/entries", r.presence.UpsertCell)
	group.POST("/entries/range", r.presence.UpsertRange)
	group.DELETE("/entries/range", r.presence.DeleteRange)
	group.DELETE("/entries/:consultantId/:date", r.presence.DeleteCell)
	group.GET("/export", r.presence.Export)
	group.POST("/import", r.presence.Import)

	sessions := group.Group("/sessions")
	sessions.POST("", r.sessions.Create)
	sessions.GET("/:id", r.sessions.Get)
	sessions.POST("/:id/toggle-range", r.sessions.ToggleRangeMode)
	sessions.POST("/:id/click", r.sessions.Click)
	sessions.POST("/:id/save", r.sessions.Save)
	sessions.POST("/:id/delete", r.sessions.Delete)
	sessions.POST("/:id/cancel", r.sessions.Cancel)
}
