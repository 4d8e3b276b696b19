package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"esn-planner/core/constants"
	"esn-planner/core/errors"
	"esn-planner/core/logger"
	consultantService "esn-planner/modules/consultant/service"
	notifService "esn-planner/modules/notification/service"
	"esn-planner/modules/presence/dto"
	"esn-planner/modules/presence/entity"
	"esn-planner/modules/presence/repository"
)

// PresenceServiceInterface defines the service contract
type PresenceServiceInterface interface {
	Load(ctx context.Context) *errors.AppError
	Snapshot() entity.Map
	Upsert(ctx context.Context, consultantID int, day time.Time, e entity.Entry) *errors.AppError
	UpsertRange(ctx context.Context, consultantID int, from, to time.Time, e entity.Entry) *errors.AppError
	Delete(ctx context.Context, consultantID int, day time.Time) *errors.AppError
	DeleteRange(ctx context.Context, consultantID int, from, to time.Time) *errors.AppError
	CellView(consultantID int, day time.Time) dto.CellResponse
	GridView(days []time.Time, query string, onlyWithEntries bool) *dto.GridResponse
	Export(year, month int) (*dto.ExportFile, *errors.AppError)
	ExportConsultant(consultantID, year, month int) (*dto.ExportFile, *errors.AppError)
	Import(ctx context.Context, data []byte) *errors.AppError
}

// DateChecker is the slice of the calendar date engine the presence store
// needs for derived cells.
type DateChecker interface {
	IsHoliday(t time.Time) bool
	IsWeekend(t time.Time) bool
}

// PresenceService owns the presence map in memory and mirrors every mutation
// to the repository. Memory is authoritative: a failing flush is logged and
// surfaced as an error toast but never rolls the map back.
type PresenceService struct {
	mu sync.RWMutex
	m  entity.Map

	repo        repository.PresenceRepositoryInterface
	consultants consultantService.ConsultantServiceInterface
	engine      DateChecker
	notifier    notifService.Notifier
}

// NewPresenceService creates a new presence service
func NewPresenceService(
	repo repository.PresenceRepositoryInterface,
	consultants consultantService.ConsultantServiceInterface,
	engine DateChecker,
	notifier notifService.Notifier,
) PresenceServiceInterface {
	return &PresenceService{
		m:           make(entity.Map),
		repo:        repo,
		consultants: consultants,
		engine:      engine,
		notifier:    notifier,
	}
}

// Load reads the stored map at startup. A read failure leaves an empty map
// and is reported, never fatal.
func (s *PresenceService) Load(ctx context.Context) *errors.AppError {
	m, err := s.repo.LoadMap(ctx)
	if err != nil {
		logger.Error("PresenceService:Load:Error", "error", err)
		s.notifier.Error(ctx, "Chargement", "Impossible de charger le calendrier")
		return errors.NewAppError(errors.ErrPersistence, "Impossible de charger le calendrier", err)
	}

	s.mu.Lock()
	s.m = m
	s.mu.Unlock()

	logger.Info("PresenceService:Load:Done", "entries", len(m))
	return nil
}

// Snapshot returns a copy of the presence map.
func (s *PresenceService) Snapshot() entity.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Clone()
}

// Upsert writes or overwrites a single cell after validating the entry.
func (s *PresenceService) Upsert(ctx context.Context, consultantID int, day time.Time, e entity.Entry) *errors.AppError {
	if appErr := e.Validate(); appErr != nil {
		return appErr
	}

	s.mu.Lock()
	next := s.m.Clone()
	next[entity.Key(consultantID, day)] = e
	s.m = next
	s.mu.Unlock()

	s.flush(ctx)
	s.notifier.Success(ctx, "Présence", "Présence enregistrée")
	return nil
}

// UpsertRange writes the same entry to every day of the inclusive range. The
// range is normalized chronologically, buffered, then committed as a unit.
func (s *PresenceService) UpsertRange(ctx context.Context, consultantID int, from, to time.Time, e entity.Entry) *errors.AppError {
	if appErr := e.Validate(); appErr != nil {
		return appErr
	}
	if from.After(to) {
		from, to = to, from
	}

	s.mu.Lock()
	next := s.m.Clone()
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		next[entity.Key(consultantID, d)] = e
	}
	s.m = next
	s.mu.Unlock()

	s.flush(ctx)
	s.notifier.Success(ctx, "Présence", "Période enregistrée")
	return nil
}

// Delete removes a single cell. A missing key is a no-op.
func (s *PresenceService) Delete(ctx context.Context, consultantID int, day time.Time) *errors.AppError {
	s.mu.Lock()
	next := s.m.Clone()
	delete(next, entity.Key(consultantID, day))
	s.m = next
	s.mu.Unlock()

	s.flush(ctx)
	s.notifier.Error(ctx, "Présence", "Présence supprimée")
	return nil
}

// DeleteRange removes every day of the inclusive range. Missing keys are
// silently ignored.
func (s *PresenceService) DeleteRange(ctx context.Context, consultantID int, from, to time.Time) *errors.AppError {
	if from.After(to) {
		from, to = to, from
	}

	s.mu.Lock()
	next := s.m.Clone()
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		delete(next, entity.Key(consultantID, d))
	}
	s.m = next
	s.mu.Unlock()

	s.flush(ctx)
	s.notifier.Error(ctx, "Présence", "Période supprimée")
	return nil
}

// CellView computes the display cell for one (consultant, day). Precedence is
// holiday over stored entry over weekend shading; a stored entry shadowed by a
// holiday stays in the map.
func (s *PresenceService) CellView(consultantID int, day time.Time) dto.CellResponse {
	cell := dto.CellResponse{Date: day.Format(constants.DateLayout)}

	s.mu.RLock()
	stored, ok := s.m[entity.Key(consultantID, day)]
	s.mu.RUnlock()

	switch {
	case s.engine.IsHoliday(day):
		cell.Kind = dto.CellHoliday
		cell.Symbol = entity.PresenceHoliday.Symbol()
	case ok:
		cell.Kind = dto.CellEntry
		cell.Symbol = stored.Type.Symbol()
		cell.Entry = dto.ToEntryPayload(stored)
		cell.Tooltip = tooltip(stored)
	case s.engine.IsWeekend(day):
		cell.Kind = dto.CellWeekend
		cell.Symbol = entity.PresenceWeekend.Symbol()
	default:
		cell.Kind = dto.CellEmpty
	}
	return cell
}

// GridView builds the consultant-by-day cell matrix for a window. Filtering is
// view-only: by name/role substring and, optionally, to consultants having at
// least one stored entry within the window.
func (s *PresenceService) GridView(days []time.Time, query string, onlyWithEntries bool) *dto.GridResponse {
	consultants := s.consultants.Filter(query)

	resp := &dto.GridResponse{
		Days: make([]string, 0, len(days)),
		Rows: make([]dto.GridRowResponse, 0, len(consultants)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, d.Format(constants.DateLayout))
	}

	for _, c := range consultants {
		if onlyWithEntries && !s.hasEntryIn(c.ID, days) {
			continue
		}
		row := dto.GridRowResponse{
			ConsultantID:   c.ID,
			ConsultantName: c.Name,
			ConsultantRole: c.Role,
			Cells:          make([]dto.CellResponse, 0, len(days)),
		}
		for _, d := range days {
			row.Cells = append(row.Cells, s.CellView(c.ID, d))
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}

func (s *PresenceService) hasEntryIn(consultantID int, days []time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range days {
		if _, ok := s.m[entity.Key(consultantID, d)]; ok {
			return true
		}
	}
	return false
}

// Export serializes the full presence map, filename-tagged with the displayed
// period (month is 1-based).
func (s *PresenceService) Export(year, month int) (*dto.ExportFile, *errors.AppError) {
	return s.export(s.Snapshot(), fmt.Sprintf(constants.ExportFilenamePattern, year, month))
}

// ExportConsultant serializes one consultant's entries, filename-tagged with
// the slugified consultant name and the displayed period.
func (s *PresenceService) ExportConsultant(consultantID, year, month int) (*dto.ExportFile, *errors.AppError) {
	consultant, appErr := s.consultants.GetByID(consultantID)
	if appErr != nil {
		return nil, appErr
	}

	filtered := make(entity.Map)
	for key, e := range s.Snapshot() {
		id, _, err := entity.ParseKey(key)
		if err == nil && id == consultantID {
			filtered[key] = e
		}
	}

	name := fmt.Sprintf(constants.ConsultantExportFilenamePattern, slug.Make(consultant.Name), year, month)
	return s.export(filtered, name)
}

func (s *PresenceService) export(m entity.Map, filename string) (*dto.ExportFile, *errors.AppError) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		logger.Error("PresenceService:export:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Erreur lors de l'export", err)
	}
	return &dto.ExportFile{Filename: filename, Data: data}, nil
}

// Import parses an exported file and replaces the whole map. Malformed input
// leaves the existing map untouched.
func (s *PresenceService) Import(ctx context.Context, data []byte) *errors.AppError {
	var m entity.Map
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Error("PresenceService:Import:ParseError", "error", err)
		s.notifier.Error(ctx, "Import", "Fichier d'import invalide")
		return errors.NewAppError(errors.ErrInvalidRequestData, "Fichier d'import invalide", err)
	}
	if m == nil {
		m = make(entity.Map)
	}

	s.mu.Lock()
	s.m = m
	s.mu.Unlock()

	s.flush(ctx)
	s.notifier.Success(ctx, "Import", "Calendrier importé")
	logger.Info("PresenceService:Import:Done", "entries", len(m))
	return nil
}

// flush mirrors the in-memory map to storage. Failures are reported but the
// map stands.
func (s *PresenceService) flush(ctx context.Context) {
	if err := s.repo.SaveMap(ctx, s.Snapshot()); err != nil {
		logger.Error("PresenceService:flush:Error", "error", err)
		s.notifier.Error(ctx, "Sauvegarde", "Erreur lors de la sauvegarde du calendrier")
	}
}

func tooltip(e entity.Entry) string {
	if e.Description == "" {
		return ""
	}
	if !e.IsFullDay && e.StartTime != nil && e.EndTime != nil {
		return fmt.Sprintf("%s (%s - %s)", e.Description, *e.StartTime, *e.EndTime)
	}
	return e.Description
}
