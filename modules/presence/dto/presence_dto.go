package dto

import "esn-planner/modules/presence/entity"

// ===================== Request DTOs =====================

// EntryPayload carries a presence entry in requests.
type EntryPayload struct {
	Type        string  `json:"type" validate:"required"`
	Description string  `json:"description"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	IsFullDay   bool    `json:"isFullDay"`
}

// UpsertCellRequest writes one cell.
type UpsertCellRequest struct {
	ConsultantID int          `json:"consultant_id" validate:"required"`
	Date         string       `json:"date" validate:"required"` // YYYY-MM-DD
	Entry        EntryPayload `json:"entry" validate:"required"`
}

// UpsertRangeRequest writes every day of an inclusive range for one consultant.
type UpsertRangeRequest struct {
	ConsultantID int          `json:"consultant_id" validate:"required"`
	StartDate    string       `json:"start_date" validate:"required"`
	EndDate      string       `json:"end_date" validate:"required"`
	Entry        EntryPayload `json:"entry" validate:"required"`
}

// DeleteRangeRequest removes every day of an inclusive range.
type DeleteRangeRequest struct {
	ConsultantID int    `json:"consultant_id" validate:"required"`
	StartDate    string `json:"start_date" validate:"required"`
	EndDate      string `json:"end_date" validate:"required"`
}

// ClickCellRequest advances a grid selection session.
type ClickCellRequest struct {
	ConsultantID int    `json:"consultant_id" validate:"required"`
	Date         string `json:"date" validate:"required"`
}

// SessionSaveRequest saves the entry form of a grid session.
type SessionSaveRequest struct {
	Entry EntryPayload `json:"entry" validate:"required"`
}

// ===================== Response DTOs =====================

// CellKind is the display precedence bucket of a grid cell.
type CellKind string

const (
	CellHoliday CellKind = "holiday"
	CellEntry   CellKind = "entry"
	CellWeekend CellKind = "weekend"
	CellEmpty   CellKind = "empty"
)

// CellResponse is one consultant-day cell of the grid.
type CellResponse struct {
	Date    string        `json:"date"`
	Kind    CellKind      `json:"kind"`
	Symbol  string        `json:"symbol,omitempty"`
	Entry   *EntryPayload `json:"entry,omitempty"`
	Tooltip string        `json:"tooltip,omitempty"`
}

// GridRowResponse is one consultant's row.
type GridRowResponse struct {
	ConsultantID   int            `json:"consultant_id"`
	ConsultantName string         `json:"consultant_name"`
	ConsultantRole string         `json:"consultant_role"`
	Cells          []CellResponse `json:"cells"`
}

// GridResponse is the full presence grid for a day window.
type GridResponse struct {
	Days []string          `json:"days"`
	Rows []GridRowResponse `json:"rows"`
}

// ExportFile is a serialized presence map ready for download or archival.
type ExportFile struct {
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
}

func ToEntryPayload(e entity.Entry) *EntryPayload {
	return &EntryPayload{
		Type:        string(e.Type),
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		IsFullDay:   e.IsFullDay,
	}
}

func (p EntryPayload) ToEntry() entity.Entry {
	return entity.Entry{
		Type:        entity.PresenceType(p.Type),
		Description: p.Description,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		IsFullDay:   p.IsFullDay,
	}
}
