package tui

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"weekplan/internal/grid"
	"weekplan/internal/interaction"
	"weekplan/internal/plan"
	"weekplan/internal/store"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewApp(s, log, "dark"), s
}

// loadApp pulls the persisted collection into the app, the same way Init
// does at startup.
func loadApp(t *testing.T, a App) App {
	t.Helper()
	msg := a.loadCollection()()
	m, _ := a.Update(msg)
	return m.(App)
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	a, _ := newTestApp(t)

	if a.activeView != viewPlanner {
		t.Fatal("default view should be the planner")
	}
	if a.week != plan.WeekA {
		t.Fatalf("default week = %q", a.week)
	}
	if a.zoom != 4 {
		t.Fatalf("default zoom = %v", a.zoom)
	}
	if a.showHelp || a.exportPicking {
		t.Fatal("overlays should be hidden by default")
	}
}

func TestAppLoadingState(t *testing.T) {
	a, _ := newTestApp(t)
	if out := a.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppViewStates(t *testing.T) {
	a, s := newTestApp(t)
	s.CreateEvent(plan.Event{
		Title: "Gym", DayOfWeek: 1, StartTime: "06:00", EndTime: "07:00", UserType: plan.Husband,
	})
	a = loadApp(t, a)

	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = m.(App)

	for _, v := range []viewState{viewPlanner, viewStats, viewCategories} {
		a.activeView = v
		if a.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	a, _ := newTestApp(t)
	a.width = 120
	a.height = 40

	header := a.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
	if !strings.Contains(header, "Week A") {
		t.Fatal("header missing the active week")
	}
}

func TestAppStatusMessage(t *testing.T) {
	a, _ := newTestApp(t)
	a.width = 120
	a.height = 40
	a.status = "test status"

	if !strings.Contains(a.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppWeekToggle(t *testing.T) {
	a, s := newTestApp(t)
	s.CreateEvent(plan.Event{Title: "A only", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", UserType: plan.Wife, WeekType: plan.WeekA})
	s.CreateEvent(plan.Event{Title: "Always", DayOfWeek: 1, StartTime: "12:00", EndTime: "13:00", UserType: plan.Wife, WeekType: plan.WeekBoth})
	a = loadApp(t, a)

	if len(a.planner.visible()) != 2 {
		t.Fatalf("week A should show 2 events, got %d", len(a.planner.visible()))
	}

	m, cmd := a.toggleWeek()
	a = m.(App)
	if cmd == nil {
		t.Fatal("toggle should persist the week in the background")
	}
	cmd()

	if a.week != plan.WeekB {
		t.Fatalf("week = %q after toggle", a.week)
	}
	if len(a.planner.visible()) != 1 {
		t.Fatalf("week B should show 1 event, got %d", len(a.planner.visible()))
	}

	if w, _ := s.ActiveWeek(); w != plan.WeekB {
		t.Fatalf("persisted week = %q", w)
	}
}

func TestAppZoomClamped(t *testing.T) {
	a, s := newTestApp(t)

	m, cmd := a.setZoom(100)
	a = m.(App)
	cmd()
	if a.zoom != 12 {
		t.Fatalf("zoom = %v, want the upper bound", a.zoom)
	}
	if z, _ := s.Zoom(); z != 12 {
		t.Fatalf("persisted zoom = %v", z)
	}

	m, cmd = a.setZoom(0)
	a = m.(App)
	cmd()
	if a.zoom != 2 {
		t.Fatalf("zoom = %v, want the lower bound", a.zoom)
	}
}

// ============================================================
// Optimistic mutations
// ============================================================

func TestAppCreateSpanOptimistic(t *testing.T) {
	a, s := newTestApp(t)
	a = loadApp(t, a)

	m, cmd := a.Update(createSpanMsg{intent: interaction.CreateSpan{
		Day: 3, User: plan.Wife, StartTime: "09:00", EndTime: "10:30",
	}})
	a = m.(App)

	// The event appears immediately under a placeholder id.
	if len(a.events) != 1 {
		t.Fatalf("expected 1 optimistic event, got %d", len(a.events))
	}
	if !strings.HasPrefix(a.events[0].ID, "temp-") {
		t.Fatalf("placeholder id = %q", a.events[0].ID)
	}

	// The background save swaps in the persisted row.
	saved, ok := cmd().(eventSavedMsg)
	if !ok {
		t.Fatalf("expected eventSavedMsg, got %T", cmd())
	}
	m, _ = a.Update(saved)
	a = m.(App)

	if strings.HasPrefix(a.events[0].ID, "temp-") {
		t.Fatal("placeholder id should be replaced after the save")
	}
	persisted, err := s.GetEvent(a.events[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if persisted.StartTime != "09:00" || persisted.EndTime != "10:30" || persisted.UserType != plan.Wife {
		t.Fatalf("persisted event = %+v", persisted)
	}
}

func TestAppMoveOptimistic(t *testing.T) {
	a, s := newTestApp(t)
	e, _ := s.CreateEvent(plan.Event{Title: "Gym", DayOfWeek: 1, StartTime: "06:00", EndTime: "07:00", UserType: plan.Husband})
	a = loadApp(t, a)

	m, cmd := a.Update(moveEventMsg{intent: interaction.Move{
		EventID: e.ID, Day: 4, User: plan.Wife, StartTime: "18:00", EndTime: "19:00",
	}})
	a = m.(App)

	// Applied locally before the write lands.
	if a.events[0].DayOfWeek != 4 || a.events[0].StartTime != "18:00" {
		t.Fatalf("optimistic event = %+v", a.events[0])
	}

	if _, ok := cmd().(mutationDoneMsg); !ok {
		t.Fatal("background update should succeed")
	}
	persisted, _ := s.GetEvent(e.ID)
	if persisted.DayOfWeek != 4 || persisted.UserType != plan.Wife {
		t.Fatalf("persisted event = %+v", persisted)
	}
}

func TestAppMutationFailureRollsBack(t *testing.T) {
	a, s := newTestApp(t)
	e, _ := s.CreateEvent(plan.Event{Title: "Gym", DayOfWeek: 1, StartTime: "06:00", EndTime: "07:00", UserType: plan.Husband})
	a = loadApp(t, a)

	// The row vanishes behind the app's back; the optimistic move applies
	// locally but the write fails.
	s.DeleteEvent(e.ID)

	m, cmd := a.Update(moveEventMsg{intent: interaction.Move{
		EventID: e.ID, Day: 4, User: plan.Husband, StartTime: "18:00", EndTime: "19:00",
	}})
	a = m.(App)
	if a.events[0].DayOfWeek != 4 {
		t.Fatal("move should apply optimistically")
	}

	errMsg, ok := cmd().(mutationErrMsg)
	if !ok {
		t.Fatalf("expected mutationErrMsg, got %T", cmd())
	}
	if !errors.Is(errMsg.err, store.ErrNotFound) {
		t.Fatalf("err = %v", errMsg.err)
	}

	// Handling the failure refetches; the optimistic change disappears.
	m, refetch := a.Update(errMsg)
	a = m.(App)
	if refetch == nil {
		t.Fatal("failure should trigger a refetch")
	}
	m, _ = a.Update(refetch())
	a = m.(App)

	if len(a.events) != 0 {
		t.Fatalf("rollback should drop the stale event, got %d", len(a.events))
	}
	if a.status == "" {
		t.Fatal("failure should surface in the status line")
	}
}

func TestAppDuplicateFocused(t *testing.T) {
	a, s := newTestApp(t)
	e, _ := s.CreateEvent(plan.Event{Title: "Gym", DayOfWeek: 1, StartTime: "06:00", EndTime: "07:00", UserType: plan.Husband})
	a = loadApp(t, a)
	a.planner.focusID = e.ID

	m, cmd := a.duplicateFocused()
	a = m.(App)
	if len(a.events) != 2 {
		t.Fatalf("expected 2 events after duplicate, got %d", len(a.events))
	}
	dup := a.events[1]
	if dup.Title != "Gym (Copy)" {
		t.Fatalf("duplicate title = %q", dup.Title)
	}
	if dup.DayOfWeek != e.DayOfWeek || dup.StartTime != e.StartTime || dup.UserType != e.UserType {
		t.Fatalf("duplicate should keep the slot, got %+v", dup)
	}

	saved, ok := cmd().(eventSavedMsg)
	if !ok {
		t.Fatalf("expected eventSavedMsg, got %T", cmd())
	}
	if saved.saved.ID == e.ID {
		t.Fatal("duplicate must get its own id")
	}
}

func TestAppDeleteFocusedOptimistic(t *testing.T) {
	a, s := newTestApp(t)
	e, _ := s.CreateEvent(plan.Event{Title: "Gym", DayOfWeek: 1, StartTime: "06:00", EndTime: "07:00", UserType: plan.Husband})
	a = loadApp(t, a)
	a.planner.focusID = e.ID

	m, cmd := a.deleteFocused()
	a = m.(App)
	if len(a.events) != 0 {
		t.Fatal("delete should apply optimistically")
	}

	if _, ok := cmd().(mutationDoneMsg); !ok {
		t.Fatal("background delete should succeed")
	}
	if _, err := s.GetEvent(e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("event should be gone from the store")
	}
}

// ============================================================
// Planner gestures
// ============================================================

func TestPlannerFinishSelectionEmitsCreate(t *testing.T) {
	p := newPlannerModel()
	p.istate = interaction.StartSelection(
		cellAt(2, plan.Husband, 9, 0),
	)

	p, cmd := p.finishGesture()
	if _, ok := p.istate.(interaction.Idle); !ok {
		t.Fatal("gesture should end idle")
	}
	msg, ok := cmd().(createSpanMsg)
	if !ok {
		t.Fatalf("expected createSpanMsg, got %T", cmd())
	}
	if msg.intent.StartTime != "09:00" || msg.intent.EndTime != "09:15" {
		t.Fatalf("intent = %+v", msg.intent)
	}
}

func TestPlannerFinishDragNoopEmitsNothing(t *testing.T) {
	p := newPlannerModel()
	e := plan.Event{ID: "1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", UserType: plan.Wife}
	d := interaction.StartDrag(e)
	d = interaction.DragOver(d, cellAt(plan.ColumnForDay(2), plan.Wife, 9, 0))
	p.istate = d

	p, cmd := p.finishGesture()
	if cmd != nil {
		t.Fatal("dropping in place must not emit a mutation")
	}
	if _, ok := p.istate.(interaction.Idle); !ok {
		t.Fatal("gesture should end idle")
	}
}

func TestPlannerWeekFilter(t *testing.T) {
	p := newPlannerModel()
	p.setData([]plan.Event{
		{ID: "a", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", WeekType: plan.WeekA},
		{ID: "b", DayOfWeek: 1, StartTime: "11:00", EndTime: "12:00", WeekType: plan.WeekB},
		{ID: "c", DayOfWeek: 1, StartTime: "13:00", EndTime: "14:00", WeekType: plan.WeekBoth},
	}, plan.FixedCategories())

	ids := func() []string {
		var out []string
		for _, e := range p.visible() {
			out = append(out, e.ID)
		}
		return out
	}

	if got := ids(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("week A visible = %v", got)
	}
	p.setWeek(plan.WeekB)
	if got := ids(); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("week B visible = %v", got)
	}
}

func TestPlannerZoomKeepsTopTime(t *testing.T) {
	p := newPlannerModel()
	p.setSize(120, 40)
	p.scroll = 24 // 06:00 at 4 rows per hour

	p.setZoom(8)
	if p.topMinute() != 360 {
		t.Fatalf("top minute = %d after zoom, want 360", p.topMinute())
	}
}

func TestPlannerRenderShowsEventAndGutter(t *testing.T) {
	p := newPlannerModel()
	p.setSize(120, 40)
	p.setData([]plan.Event{
		{ID: "1", Title: "Standup", CategoryID: "work", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", UserType: plan.Combined, WeekType: plan.WeekBoth},
	}, plan.FixedCategories())
	p.scroll = int(9 * p.geom.HourHeight)

	out := p.view()
	if !strings.Contains(out, "Standup") {
		t.Fatal("render should show the event title")
	}
	if !strings.Contains(out, "09:00") {
		t.Fatal("render should label the hour in the gutter")
	}
	if !strings.Contains(out, "Monday") {
		t.Fatal("render should show day headers")
	}
}

func TestPlannerCycleFocus(t *testing.T) {
	p := newPlannerModel()
	p.setSize(120, 40)
	p.setData([]plan.Event{
		{ID: "a", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", UserType: plan.Husband, WeekType: plan.WeekBoth},
		{ID: "b", DayOfWeek: 1, StartTime: "11:00", EndTime: "12:00", UserType: plan.Wife, WeekType: plan.WeekBoth},
		{ID: "c", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", UserType: plan.Wife, WeekType: plan.WeekBoth},
	}, plan.FixedCategories())
	p.focusDay = 1

	p.cycleFocus()
	first := p.focusID
	p.cycleFocus()
	second := p.focusID
	p.cycleFocus()
	third := p.focusID

	if first == "" || second == "" || first == second {
		t.Fatalf("focus should cycle: %q, %q", first, second)
	}
	if third != first {
		t.Fatalf("focus should wrap around, got %q", third)
	}
	if first == "c" || second == "c" {
		t.Fatal("focus should stay on the cursor day")
	}
}

func cellAt(col int, user plan.UserType, hour, minute int) grid.Cell {
	return grid.Cell{Column: col, User: user, Hour: hour, Minute: minute}
}

// ============================================================
// Editor helpers
// ============================================================

func TestValidateTime(t *testing.T) {
	valid := []string{"00:00", "09:15", "23:45", "24:00"}
	for _, v := range valid {
		if err := validateTime(v); err != nil {
			t.Errorf("validateTime(%q) = %v", v, err)
		}
	}
	invalid := []string{"9:00", "25:00", "24:15", "09:07", "09-00", "", "0900"}
	for _, v := range invalid {
		if err := validateTime(v); err == nil {
			t.Errorf("validateTime(%q) should fail", v)
		}
	}
}

func TestMidnightEndRoundTrip(t *testing.T) {
	if displayEnd("00:00") != "24:00" {
		t.Fatal("a midnight end should display as 24:00")
	}
	if displayEnd("06:30") != "06:30" {
		t.Fatal("other ends display unchanged")
	}
	if storedEnd("24:00") != "00:00" {
		t.Fatal("24:00 should be stored as 00:00")
	}
	if storedEnd("06:30") != "06:30" {
		t.Fatal("other ends stored unchanged")
	}
}

// ============================================================
// Helpers and key bindings
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0h 00m"},
		{15, "0h 15m"},
		{90, "1h 30m"},
		{480, "8h 00m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.mins); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}

func TestSideLabel(t *testing.T) {
	if sideLabel(plan.Husband) != "Him" || sideLabel(plan.Wife) != "Her" || sideLabel(plan.Combined) != "Both" {
		t.Fatal("unexpected side labels")
	}
}

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 3 {
		t.Fatalf("expected 3 view names, got %d", len(viewNames))
	}
	expected := []string{"Planner", "Stats", "Categories"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}
