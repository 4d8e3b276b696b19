package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	appErrors "esn-planner/core/errors"
	calendarService "esn-planner/modules/calendar/service"
	consultantEntity "esn-planner/modules/consultant/entity"
	"esn-planner/modules/presence/dto"
	"esn-planner/modules/presence/entity"
)

// ===================== test fakes =====================

type fakePresenceRepo struct {
	m       entity.Map
	loadErr error
	saveErr error
	saves   int
}

func (r *fakePresenceRepo) LoadMap(ctx context.Context) (entity.Map, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.m.Clone(), nil
}

func (r *fakePresenceRepo) SaveMap(ctx context.Context, m entity.Map) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.m = m.Clone()
	return nil
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(ctx context.Context, title, message string) {
	n.successes = append(n.successes, message)
}

func (n *fakeNotifier) Error(ctx context.Context, title, message string) {
	n.errors = append(n.errors, message)
}

type fakeConsultants struct {
	list []consultantEntity.Consultant
}

func (f *fakeConsultants) Load(ctx context.Context) *appErrors.AppError { return nil }
func (f *fakeConsultants) List() []consultantEntity.Consultant         { return f.list }

func (f *fakeConsultants) Filter(query string) []consultantEntity.Consultant {
	var out []consultantEntity.Consultant
	for _, c := range f.list {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeConsultants) GetByID(id int) (*consultantEntity.Consultant, *appErrors.AppError) {
	for i := range f.list {
		if f.list[i].ID == id {
			return &f.list[i], nil
		}
	}
	return nil, appErrors.NewAppError(appErrors.ErrNotFound, "Consultant introuvable", nil)
}

func (f *fakeConsultants) Add(ctx context.Context, name, role string) (*consultantEntity.Consultant, *appErrors.AppError) {
	c := consultantEntity.Consultant{ID: len(f.list) + 1, Name: name, Role: role}
	f.list = append(f.list, c)
	return &c, nil
}

func (f *fakeConsultants) ReplaceAll(ctx context.Context, consultants []consultantEntity.Consultant) *appErrors.AppError {
	f.list = consultants
	return nil
}

func newTestService(repo *fakePresenceRepo) (PresenceServiceInterface, *fakeNotifier) {
	notifier := &fakeNotifier{}
	consultants := &fakeConsultants{list: []consultantEntity.Consultant{
		{ID: 1, Name: "Alice Martin", Role: "Développeuse"},
		{ID: 2, Name: "Bruno Leroy", Role: "Chef de projet"},
	}}
	svc := NewPresenceService(repo, consultants, calendarService.NewDateEngine(), notifier)
	return svc, notifier
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fullDay(typ entity.PresenceType) entity.Entry {
	return entity.Entry{Type: typ, IsFullDay: true}
}

// ===================== store tests =====================

func TestUpsertStoresAndFlushes(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{}}
	svc, notifier := newTestService(repo)

	if appErr := svc.Upsert(context.Background(), 1, day("2025-04-10"), fullDay(entity.PresenceAbsence)); appErr != nil {
		t.Fatalf("Upsert: %v", appErr)
	}

	snap := svc.Snapshot()
	if got := snap["1-2025-04-10"]; got.Type != entity.PresenceAbsence {
		t.Errorf("stored entry = %+v, want absence", got)
	}
	if repo.saves != 1 {
		t.Errorf("repo saves = %d, want 1", repo.saves)
	}
	if len(notifier.successes) != 1 {
		t.Errorf("success toasts = %v, want one", notifier.successes)
	}
}

func TestUpsertRejectsInvalidEntryWithoutMutating(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{}}
	svc, _ := newTestService(repo)

	appErr := svc.Upsert(context.Background(), 1, day("2025-04-10"), fullDay(entity.PresenceHoliday))
	if appErr == nil {
		t.Fatal("Upsert with derived type should fail")
	}
	if len(svc.Snapshot()) != 0 {
		t.Error("rejected upsert must not touch the map")
	}
	if repo.saves != 0 {
		t.Error("rejected upsert must not flush")
	}
}

func TestUpsertRangeCoversInclusiveBoundsBothOrders(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		repo := &fakePresenceRepo{m: entity.Map{}}
		svc, _ := newTestService(repo)

		from, to := day("2025-04-08"), day("2025-04-11")
		if reversed {
			from, to = to, from
		}
		if appErr := svc.UpsertRange(context.Background(), 2, from, to, fullDay(entity.PresenceRemote)); appErr != nil {
			t.Fatalf("UpsertRange(reversed=%v): %v", reversed, appErr)
		}

		snap := svc.Snapshot()
		if len(snap) != 4 {
			t.Errorf("reversed=%v: %d entries, want 4", reversed, len(snap))
		}
		for _, key := range []string{"2-2025-04-08", "2-2025-04-09", "2-2025-04-10", "2-2025-04-11"} {
			if _, ok := snap[key]; !ok {
				t.Errorf("reversed=%v: missing %s", reversed, key)
			}
		}
		if repo.saves != 1 {
			t.Errorf("reversed=%v: repo saves = %d, want one atomic flush", reversed, repo.saves)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{
		"1-2025-04-10": fullDay(entity.PresenceAbsence),
	}}
	svc, _ := newTestService(repo)
	if appErr := svc.Load(context.Background()); appErr != nil {
		t.Fatalf("Load: %v", appErr)
	}

	for i := 0; i < 2; i++ {
		if appErr := svc.Delete(context.Background(), 1, day("2025-04-10")); appErr != nil {
			t.Fatalf("Delete #%d: %v", i+1, appErr)
		}
	}
	if len(svc.Snapshot()) != 0 {
		t.Error("entry should be gone")
	}
}

func TestDeleteRangeOnlyTouchesTargetConsultant(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{
		"1-2025-04-09": fullDay(entity.PresenceRTT),
		"1-2025-04-10": fullDay(entity.PresenceRTT),
		"2-2025-04-10": fullDay(entity.PresenceRemote),
	}}
	svc, _ := newTestService(repo)
	if appErr := svc.Load(context.Background()); appErr != nil {
		t.Fatalf("Load: %v", appErr)
	}

	if appErr := svc.DeleteRange(context.Background(), 1, day("2025-04-01"), day("2025-04-30")); appErr != nil {
		t.Fatalf("DeleteRange: %v", appErr)
	}

	snap := svc.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("%d entries left, want 1: %v", len(snap), snap)
	}
	if _, ok := snap["2-2025-04-10"]; !ok {
		t.Error("other consultant's entry must survive")
	}
}

func TestPersistenceFailureKeepsMemoryAndRaisesToast(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{}, saveErr: errors.New("db down")}
	svc, notifier := newTestService(repo)

	if appErr := svc.Upsert(context.Background(), 1, day("2025-04-10"), fullDay(entity.PresenceTraining)); appErr != nil {
		t.Fatalf("Upsert should not fail on flush error: %v", appErr)
	}
	if _, ok := svc.Snapshot()["1-2025-04-10"]; !ok {
		t.Error("memory stays authoritative after a failed flush")
	}
	if len(notifier.errors) == 0 {
		t.Error("failed flush must raise an error toast")
	}
}

// ===================== view tests =====================

func TestCellViewPrecedence(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{
		"1-2025-04-21": fullDay(entity.PresenceAbsence), // Easter Monday 2025
		"1-2025-04-12": fullDay(entity.PresenceRemote),  // a Saturday
		"1-2025-04-10": fullDay(entity.PresenceRTT),     // plain Thursday
	}}
	svc, _ := newTestService(repo)
	if appErr := svc.Load(context.Background()); appErr != nil {
		t.Fatalf("Load: %v", appErr)
	}

	tests := []struct {
		name     string
		date     string
		wantKind dto.CellKind
		wantSym  string
	}{
		{"holiday wins over stored entry", "2025-04-21", dto.CellHoliday, "JF"},
		{"entry wins over weekend", "2025-04-12", dto.CellEntry, "T"},
		{"plain entry", "2025-04-10", dto.CellEntry, "R"},
		{"bare weekend", "2025-04-13", dto.CellWeekend, "W"},
		{"empty weekday", "2025-04-11", dto.CellEmpty, ""},
		{"fixed holiday", "2025-05-01", dto.CellHoliday, "JF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := svc.CellView(1, day(tt.date))
			if cell.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", cell.Kind, tt.wantKind)
			}
			if cell.Symbol != tt.wantSym {
				t.Errorf("Symbol = %q, want %q", cell.Symbol, tt.wantSym)
			}
		})
	}
}

func TestTooltip(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{}}
	svc, _ := newTestService(repo)

	start, end := "09:00", "12:30"
	entries := map[string]entity.Entry{
		"2025-04-07": {Type: entity.PresenceAbsence, IsFullDay: true},
		"2025-04-08": {Type: entity.PresenceAbsence, Description: "Congés", IsFullDay: true},
		"2025-04-09": {Type: entity.PresenceRemote, Description: "Client", StartTime: &start, EndTime: &end},
	}
	for d, e := range entries {
		if appErr := svc.Upsert(context.Background(), 1, day(d), e); appErr != nil {
			t.Fatalf("Upsert %s: %v", d, appErr)
		}
	}

	tests := []struct {
		date string
		want string
	}{
		{"2025-04-07", ""},
		{"2025-04-08", "Congés"},
		{"2025-04-09", "Client (09:00 - 12:30)"},
	}
	for _, tt := range tests {
		if got := svc.CellView(1, day(tt.date)).Tooltip; got != tt.want {
			t.Errorf("tooltip for %s = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestGridViewFilters(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{
		"1-2025-04-10": fullDay(entity.PresenceAbsence),
	}}
	svc, _ := newTestService(repo)
	if appErr := svc.Load(context.Background()); appErr != nil {
		t.Fatalf("Load: %v", appErr)
	}

	days := []time.Time{day("2025-04-09"), day("2025-04-10"), day("2025-04-11")}

	grid := svc.GridView(days, "", false)
	if len(grid.Rows) != 2 {
		t.Fatalf("unfiltered rows = %d, want 2", len(grid.Rows))
	}
	if len(grid.Days) != 3 || grid.Days[1] != "2025-04-10" {
		t.Errorf("grid days = %v", grid.Days)
	}
	if len(grid.Rows[0].Cells) != 3 {
		t.Errorf("row cells = %d, want 3", len(grid.Rows[0].Cells))
	}

	byName := svc.GridView(days, "alice", false)
	if len(byName.Rows) != 1 || byName.Rows[0].ConsultantID != 1 {
		t.Errorf("name filter rows = %+v", byName.Rows)
	}

	byRole := svc.GridView(days, "chef", false)
	if len(byRole.Rows) != 1 || byRole.Rows[0].ConsultantID != 2 {
		t.Errorf("role filter rows = %+v", byRole.Rows)
	}

	withEntries := svc.GridView(days, "", true)
	if len(withEntries.Rows) != 1 || withEntries.Rows[0].ConsultantID != 1 {
		t.Errorf("only_with_entries rows = %+v", withEntries.Rows)
	}
}

// ===================== export / import tests =====================

func TestExportImportRoundTrip(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{
		"1-2025-04-10": fullDay(entity.PresenceAbsence),
		"2-2025-04-11": fullDay(entity.PresenceRemote),
	}}
	svc, _ := newTestService(repo)
	if appErr := svc.Load(context.Background()); appErr != nil {
		t.Fatalf("Load: %v", appErr)
	}

	file, appErr := svc.Export(2025, 4)
	if appErr != nil {
		t.Fatalf("Export: %v", appErr)
	}
	if file.Filename != "calendar_data_2025_4.json" {
		t.Errorf("filename = %q", file.Filename)
	}

	fresh, _ := newTestService(&fakePresenceRepo{m: entity.Map{}})
	if appErr := fresh.Import(context.Background(), file.Data); appErr != nil {
		t.Fatalf("Import: %v", appErr)
	}
	snap := fresh.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("imported %d entries, want 2", len(snap))
	}
	if snap["2-2025-04-11"].Type != entity.PresenceRemote {
		t.Errorf("imported entry = %+v", snap["2-2025-04-11"])
	}
}

func TestImportAcceptsLegacyCellValues(t *testing.T) {
	svc, _ := newTestService(&fakePresenceRepo{m: entity.Map{}})

	raw := []byte(`{"1-2025-04-10":"absence","1-2025-04-11":{"type":"remote","description":"","startTime":null,"endTime":null,"isFullDay":true}}`)
	if appErr := svc.Import(context.Background(), raw); appErr != nil {
		t.Fatalf("Import: %v", appErr)
	}

	snap := svc.Snapshot()
	legacy := snap["1-2025-04-10"]
	if legacy.Type != entity.PresenceAbsence || !legacy.IsFullDay {
		t.Errorf("legacy cell = %+v", legacy)
	}
}

func TestImportMalformedLeavesMapUntouched(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{
		"1-2025-04-10": fullDay(entity.PresenceAbsence),
	}}
	svc, notifier := newTestService(repo)
	if appErr := svc.Load(context.Background()); appErr != nil {
		t.Fatalf("Load: %v", appErr)
	}

	if appErr := svc.Import(context.Background(), []byte(`{not json`)); appErr == nil {
		t.Fatal("malformed import should fail")
	}
	if len(svc.Snapshot()) != 1 {
		t.Error("failed import must not modify the map")
	}
	if len(notifier.errors) == 0 {
		t.Error("failed import must raise an error toast")
	}
}

func TestExportConsultantFiltersAndSlugs(t *testing.T) {
	repo := &fakePresenceRepo{m: entity.Map{
		"1-2025-04-10": fullDay(entity.PresenceAbsence),
		"2-2025-04-10": fullDay(entity.PresenceRemote),
	}}
	svc, _ := newTestService(repo)
	if appErr := svc.Load(context.Background()); appErr != nil {
		t.Fatalf("Load: %v", appErr)
	}

	file, appErr := svc.ExportConsultant(1, 2025, 4)
	if appErr != nil {
		t.Fatalf("ExportConsultant: %v", appErr)
	}
	if file.Filename != "calendar_alice-martin_2025_4.json" {
		t.Errorf("filename = %q", file.Filename)
	}

	var m entity.Map
	if err := json.Unmarshal(file.Data, &m); err != nil {
		t.Fatalf("export not parseable: %v", err)
	}
	if len(m) != 1 {
		t.Fatalf("exported %d entries, want 1: %v", len(m), m)
	}
	if _, ok := m["1-2025-04-10"]; !ok {
		t.Error("consultant's own entry missing")
	}

	if _, appErr := svc.ExportConsultant(99, 2025, 4); appErr == nil {
		t.Error("unknown consultant should fail")
	}
}

func TestLoadFailureLeavesEmptyMap(t *testing.T) {
	repo := &fakePresenceRepo{loadErr: errors.New("db down")}
	svc, notifier := newTestService(repo)

	if appErr := svc.Load(context.Background()); appErr == nil {
		t.Fatal("Load should surface the storage failure")
	}
	if len(svc.Snapshot()) != 0 {
		t.Error("map should stay empty after a failed load")
	}
	if len(notifier.errors) == 0 {
		t.Error("failed load must raise an error toast")
	}
}
