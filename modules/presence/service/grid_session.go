package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"esn-planner/core/cache"
	"esn-planner/core/constants"
	"esn-planner/core/errors"
	"esn-planner/core/logger"
	"esn-planner/modules/presence/entity"
)

// GridState is the interaction state of a grid selection session.
type GridState string

const (
	StateIdle       GridState = "idle"
	StateRangeStart GridState = "range_start"
	StateRangeReady GridState = "range_ready"
	StateCellEdit   GridState = "cell_editing"
)

// CellRef identifies one grid cell.
type CellRef struct {
	ConsultantID int    `json:"consultant_id"`
	Date         string `json:"date"` // YYYY-MM-DD
}

// GridSession tracks one user's selection on the presence grid. Sessions are
// ephemeral and expire from the cache when abandoned.
type GridSession struct {
	ID        string    `json:"id"`
	RangeMode bool      `json:"range_mode"`
	State     GridState `json:"state"`
	FormOpen  bool      `json:"form_open"`
	Start     *CellRef  `json:"start,omitempty"`
	End       *CellRef  `json:"end,omitempty"`
}

const sessionKeyPrefix = "grid_session:"

// GridSessionManager drives the selection state machine and issues the
// resulting store mutations. It never touches the presence map directly.
type GridSessionManager struct {
	cache cache.Cache
	store PresenceServiceInterface
}

func NewGridSessionManager(c cache.Cache, store PresenceServiceInterface) *GridSessionManager {
	return &GridSessionManager{cache: c, store: store}
}

// Create starts a new idle session.
func (m *GridSessionManager) Create(ctx context.Context) (*GridSession, *errors.AppError) {
	session := &GridSession{
		ID:    uuid.New().String(),
		State: StateIdle,
	}
	if appErr := m.save(ctx, session); appErr != nil {
		return nil, appErr
	}
	return session, nil
}

// Get fetches a session by id.
func (m *GridSessionManager) Get(ctx context.Context, id string) (*GridSession, *errors.AppError) {
	raw, err := m.cache.Get(ctx, sessionKeyPrefix+id)
	if err == cache.ErrCacheMiss {
		return nil, errors.NewAppError(errors.ErrNotFound, "Session introuvable", nil)
	}
	if err != nil {
		logger.Error("GridSessionManager:Get:Error", "error", err, "session_id", id)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Session inaccessible", err)
	}

	var session GridSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		logger.Error("GridSessionManager:Get:ParseError", "error", err, "session_id", id)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Session corrompue", err)
	}
	return &session, nil
}

// ToggleRangeMode flips range-selection mode. Leaving range mode drops any
// half-built selection.
func (m *GridSessionManager) ToggleRangeMode(ctx context.Context, id string) (*GridSession, *errors.AppError) {
	session, appErr := m.Get(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	session.RangeMode = !session.RangeMode
	if !session.RangeMode {
		session.Start, session.End = nil, nil
		session.State = StateIdle
		session.FormOpen = false
	}

	if appErr := m.save(ctx, session); appErr != nil {
		return nil, appErr
	}
	return session, nil
}

// ClickCell advances the state machine for a cell click. In range mode the
// first click captures the start, a second click on the same consultant's row
// captures the end and opens the entry form; a click on a different row is
// ignored. Outside range mode a click opens the form for that single cell.
func (m *GridSessionManager) ClickCell(ctx context.Context, id string, cell CellRef) (*GridSession, *errors.AppError) {
	session, appErr := m.Get(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	if !session.RangeMode {
		session.Start = &cell
		session.End = nil
		session.State = StateCellEdit
		session.FormOpen = true
	} else if session.Start == nil || session.State != StateRangeStart {
		session.Start = &cell
		session.End = nil
		session.State = StateRangeStart
		session.FormOpen = false
	} else if cell.ConsultantID != session.Start.ConsultantID {
		// Both endpoints must belong to the same consultant.
		return session, nil
	} else {
		start, end := *session.Start, cell
		if end.Date < start.Date {
			start, end = end, start
		}
		session.Start, session.End = &start, &end
		session.State = StateRangeReady
		session.FormOpen = true
	}

	if appErr := m.save(ctx, session); appErr != nil {
		return nil, appErr
	}
	return session, nil
}

// Save validates and writes the form entry through the store, then clears the
// selection. A validation failure leaves both the map and the session alone.
func (m *GridSessionManager) Save(ctx context.Context, id string, e entity.Entry) (*GridSession, *errors.AppError) {
	session, appErr := m.Get(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !session.FormOpen || session.Start == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Aucune cellule sélectionnée", nil)
	}

	startDay, appErr := parseCellDate(session.Start)
	if appErr != nil {
		return nil, appErr
	}

	switch session.State {
	case StateRangeReady:
		endDay, appErr := parseCellDate(session.End)
		if appErr != nil {
			return nil, appErr
		}
		if appErr := m.store.UpsertRange(ctx, session.Start.ConsultantID, startDay, endDay, e); appErr != nil {
			return nil, appErr
		}
	case StateCellEdit:
		if appErr := m.store.Upsert(ctx, session.Start.ConsultantID, startDay, e); appErr != nil {
			return nil, appErr
		}
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Aucune cellule sélectionnée", nil)
	}

	session.Start, session.End = nil, nil
	session.State = StateIdle
	session.FormOpen = false

	if appErr := m.save(ctx, session); appErr != nil {
		return nil, appErr
	}
	return session, nil
}

// Delete removes the selected cell or range and clears the selection. The
// range-mode toggle itself is left untouched.
func (m *GridSessionManager) Delete(ctx context.Context, id string) (*GridSession, *errors.AppError) {
	session, appErr := m.Get(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !session.FormOpen || session.Start == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Aucune cellule sélectionnée", nil)
	}

	startDay, appErr := parseCellDate(session.Start)
	if appErr != nil {
		return nil, appErr
	}

	switch session.State {
	case StateRangeReady:
		endDay, appErr := parseCellDate(session.End)
		if appErr != nil {
			return nil, appErr
		}
		if appErr := m.store.DeleteRange(ctx, session.Start.ConsultantID, startDay, endDay); appErr != nil {
			return nil, appErr
		}
	case StateCellEdit:
		if appErr := m.store.Delete(ctx, session.Start.ConsultantID, startDay); appErr != nil {
			return nil, appErr
		}
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Aucune cellule sélectionnée", nil)
	}

	session.Start, session.End = nil, nil
	session.State = StateIdle
	session.FormOpen = false

	if appErr := m.save(ctx, session); appErr != nil {
		return nil, appErr
	}
	return session, nil
}

// Cancel closes the entry form without mutating the store. The selection is
// deliberately left as-is: only an explicit save or delete clears it.
func (m *GridSessionManager) Cancel(ctx context.Context, id string) (*GridSession, *errors.AppError) {
	session, appErr := m.Get(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	session.FormOpen = false

	if appErr := m.save(ctx, session); appErr != nil {
		return nil, appErr
	}
	return session, nil
}

func (m *GridSessionManager) save(ctx context.Context, session *GridSession) *errors.AppError {
	data, err := json.Marshal(session)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Session non sérialisable", err)
	}
	if err := m.cache.Set(ctx, sessionKeyPrefix+session.ID, string(data), constants.GridSessionTTL); err != nil {
		logger.Error("GridSessionManager:save:Error", "error", err, "session_id", session.ID)
		return errors.NewAppError(errors.ErrInternalServer, "Session non enregistrée", err)
	}
	return nil
}

func parseCellDate(cell *CellRef) (time.Time, *errors.AppError) {
	if cell == nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Cellule manquante", nil)
	}
	day, err := time.Parse(constants.DateLayout, cell.Date)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Date de cellule invalide", err)
	}
	return day, nil
}
