package entity

import (
	"esn-planner/core/entity"
)

// Style distinguishes the two toast flavours the planner emits.
type Style string

const (
	StyleSuccess Style = "success"
	StyleError   Style = "error"
)

// Notification is a user-visible toast produced by planner operations. A
// non-zero DismissAfterMS tells the client to auto-dismiss it.
type Notification struct {
	Title          string `db:"title" json:"title"`
	Message        string `db:"message" json:"message"`
	Style          Style  `db:"style" json:"style"`
	DismissAfterMS int    `db:"dismiss_after_ms" json:"dismiss_after_ms"`
	IsRead         bool   `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
