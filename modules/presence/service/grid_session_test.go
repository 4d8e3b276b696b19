package service

import (
	"context"
	"testing"
	"time"

	"esn-planner/core/cache"
	"esn-planner/modules/presence/entity"
)

type memCache struct {
	values map[string]string
}

func newMemCache() *memCache {
	return &memCache{values: map[string]string{}}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *memCache) Del(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *memCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}

func newTestSessionManager(t *testing.T) (*GridSessionManager, PresenceServiceInterface) {
	t.Helper()
	svc, _ := newTestService(&fakePresenceRepo{m: entity.Map{}})
	return NewGridSessionManager(newMemCache(), svc), svc
}

func mustCreate(t *testing.T, m *GridSessionManager) *GridSession {
	t.Helper()
	session, appErr := m.Create(context.Background())
	if appErr != nil {
		t.Fatalf("Create: %v", appErr)
	}
	return session
}

func mustClick(t *testing.T, m *GridSessionManager, id string, consultantID int, date string) *GridSession {
	t.Helper()
	session, appErr := m.ClickCell(context.Background(), id, CellRef{ConsultantID: consultantID, Date: date})
	if appErr != nil {
		t.Fatalf("ClickCell(%d, %s): %v", consultantID, date, appErr)
	}
	return session
}

func TestSessionCreateAndGet(t *testing.T) {
	m, _ := newTestSessionManager(t)
	created := mustCreate(t, m)

	if created.State != StateIdle || created.RangeMode || created.FormOpen {
		t.Errorf("new session = %+v, want idle", created)
	}

	got, appErr := m.Get(context.Background(), created.ID)
	if appErr != nil {
		t.Fatalf("Get: %v", appErr)
	}
	if got.ID != created.ID {
		t.Errorf("Get returned session %s, want %s", got.ID, created.ID)
	}

	if _, appErr := m.Get(context.Background(), "missing"); appErr == nil {
		t.Error("unknown session id should fail")
	}
}

func TestSingleCellClickOpensForm(t *testing.T) {
	m, _ := newTestSessionManager(t)
	s := mustCreate(t, m)

	s = mustClick(t, m, s.ID, 1, "2025-04-10")
	if s.State != StateCellEdit || !s.FormOpen {
		t.Errorf("state = %s form_open = %v, want cell_editing with open form", s.State, s.FormOpen)
	}
	if s.Start == nil || s.Start.Date != "2025-04-10" || s.End != nil {
		t.Errorf("selection = %+v / %+v", s.Start, s.End)
	}

	// Clicking another cell just moves the edit target.
	s = mustClick(t, m, s.ID, 2, "2025-04-15")
	if s.Start.ConsultantID != 2 || s.Start.Date != "2025-04-15" {
		t.Errorf("selection did not move: %+v", s.Start)
	}
}

func TestRangeSelectionTwoClicks(t *testing.T) {
	m, _ := newTestSessionManager(t)
	s := mustCreate(t, m)

	if s, _ = m.ToggleRangeMode(context.Background(), s.ID); !s.RangeMode {
		t.Fatal("range mode should be on")
	}

	s = mustClick(t, m, s.ID, 1, "2025-04-10")
	if s.State != StateRangeStart || s.FormOpen {
		t.Errorf("after first click: state = %s form_open = %v", s.State, s.FormOpen)
	}

	s = mustClick(t, m, s.ID, 1, "2025-04-14")
	if s.State != StateRangeReady || !s.FormOpen {
		t.Errorf("after second click: state = %s form_open = %v", s.State, s.FormOpen)
	}
	if s.Start.Date != "2025-04-10" || s.End.Date != "2025-04-14" {
		t.Errorf("range = %s..%s", s.Start.Date, s.End.Date)
	}
}

func TestRangeSelectionNormalizesBackwardClicks(t *testing.T) {
	m, _ := newTestSessionManager(t)
	s := mustCreate(t, m)
	s, _ = m.ToggleRangeMode(context.Background(), s.ID)

	mustClick(t, m, s.ID, 1, "2025-04-14")
	s = mustClick(t, m, s.ID, 1, "2025-04-10")

	if s.Start.Date != "2025-04-10" || s.End.Date != "2025-04-14" {
		t.Errorf("range = %s..%s, want chronological", s.Start.Date, s.End.Date)
	}
}

func TestRangeClickOtherConsultantIgnored(t *testing.T) {
	m, _ := newTestSessionManager(t)
	s := mustCreate(t, m)
	s, _ = m.ToggleRangeMode(context.Background(), s.ID)

	mustClick(t, m, s.ID, 1, "2025-04-10")
	s = mustClick(t, m, s.ID, 2, "2025-04-14")

	if s.State != StateRangeStart {
		t.Errorf("state = %s, cross-row click must be ignored", s.State)
	}
	if s.Start.ConsultantID != 1 || s.Start.Date != "2025-04-10" {
		t.Errorf("start = %+v, must be unchanged", s.Start)
	}
}

func TestToggleRangeModeOffClearsSelection(t *testing.T) {
	m, _ := newTestSessionManager(t)
	s := mustCreate(t, m)
	s, _ = m.ToggleRangeMode(context.Background(), s.ID)
	mustClick(t, m, s.ID, 1, "2025-04-10")

	s, appErr := m.ToggleRangeMode(context.Background(), s.ID)
	if appErr != nil {
		t.Fatalf("ToggleRangeMode: %v", appErr)
	}
	if s.RangeMode || s.Start != nil || s.State != StateIdle {
		t.Errorf("leaving range mode must drop selection: %+v", s)
	}
}

func TestSaveSingleCellWritesStoreAndResets(t *testing.T) {
	m, store := newTestSessionManager(t)
	s := mustCreate(t, m)
	mustClick(t, m, s.ID, 1, "2025-04-10")

	s, appErr := m.Save(context.Background(), s.ID, entity.Entry{Type: entity.PresenceAbsence, IsFullDay: true})
	if appErr != nil {
		t.Fatalf("Save: %v", appErr)
	}
	if s.State != StateIdle || s.FormOpen || s.Start != nil {
		t.Errorf("session not reset after save: %+v", s)
	}
	if _, ok := store.Snapshot()["1-2025-04-10"]; !ok {
		t.Error("entry not written to the store")
	}
}

func TestSaveRangeWritesEveryDay(t *testing.T) {
	m, store := newTestSessionManager(t)
	s := mustCreate(t, m)
	m.ToggleRangeMode(context.Background(), s.ID)
	mustClick(t, m, s.ID, 1, "2025-04-10")
	mustClick(t, m, s.ID, 1, "2025-04-12")

	if _, appErr := m.Save(context.Background(), s.ID, entity.Entry{Type: entity.PresenceRTT, IsFullDay: true}); appErr != nil {
		t.Fatalf("Save: %v", appErr)
	}

	snap := store.Snapshot()
	for _, key := range []string{"1-2025-04-10", "1-2025-04-11", "1-2025-04-12"} {
		if _, ok := snap[key]; !ok {
			t.Errorf("missing %s", key)
		}
	}
}

func TestSaveInvalidEntryKeepsSessionAndStore(t *testing.T) {
	m, store := newTestSessionManager(t)
	s := mustCreate(t, m)
	mustClick(t, m, s.ID, 1, "2025-04-10")

	if _, appErr := m.Save(context.Background(), s.ID, entity.Entry{Type: "nonsense", IsFullDay: true}); appErr == nil {
		t.Fatal("invalid entry should fail")
	}

	got, _ := m.Get(context.Background(), s.ID)
	if got.State != StateCellEdit || !got.FormOpen {
		t.Errorf("failed save must leave the session editing: %+v", got)
	}
	if len(store.Snapshot()) != 0 {
		t.Error("failed save must not touch the store")
	}
}

func TestSaveWithoutSelectionFails(t *testing.T) {
	m, _ := newTestSessionManager(t)
	s := mustCreate(t, m)

	if _, appErr := m.Save(context.Background(), s.ID, entity.Entry{Type: entity.PresenceAbsence, IsFullDay: true}); appErr == nil {
		t.Error("save with no selection should fail")
	}
}

func TestDeleteRangeThroughSession(t *testing.T) {
	m, store := newTestSessionManager(t)
	ctx := context.Background()
	store.UpsertRange(ctx, 1, day("2025-04-10"), day("2025-04-12"), fullDay(entity.PresenceRemote))

	s := mustCreate(t, m)
	m.ToggleRangeMode(ctx, s.ID)
	mustClick(t, m, s.ID, 1, "2025-04-10")
	mustClick(t, m, s.ID, 1, "2025-04-12")

	s, appErr := m.Delete(ctx, s.ID)
	if appErr != nil {
		t.Fatalf("Delete: %v", appErr)
	}
	if len(store.Snapshot()) != 0 {
		t.Errorf("entries left: %v", store.Snapshot())
	}
	if !s.RangeMode {
		t.Error("delete must keep the range-mode toggle")
	}
	if s.State != StateIdle || s.Start != nil {
		t.Errorf("selection not cleared: %+v", s)
	}
}

func TestCancelClosesFormButKeepsSelection(t *testing.T) {
	m, _ := newTestSessionManager(t)
	s := mustCreate(t, m)
	mustClick(t, m, s.ID, 1, "2025-04-10")

	s, appErr := m.Cancel(context.Background(), s.ID)
	if appErr != nil {
		t.Fatalf("Cancel: %v", appErr)
	}
	if s.FormOpen {
		t.Error("cancel must close the form")
	}
	if s.Start == nil || s.Start.Date != "2025-04-10" || s.State != StateCellEdit {
		t.Errorf("cancel must keep the selection: %+v", s)
	}
}
