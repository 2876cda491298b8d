package interaction

import (
	"testing"

	"weekplan/internal/grid"
	"weekplan/internal/plan"
)

func cell(col int, user plan.UserType, hour, minute int) grid.Cell {
	return grid.Cell{Column: col, User: user, Hour: hour, Minute: minute}
}

func TestSelectionEndFollowsPointer(t *testing.T) {
	s := StartSelection(cell(2, plan.Husband, 9, 0))

	s = ExtendSelection(s, cell(2, plan.Husband, 10, 0))
	// Sweeping back up toward the anchor pulls the end back with it.
	s = ExtendSelection(s, cell(2, plan.Husband, 9, 30))

	start, end := s.Span()
	if start != 540 || end != 585 {
		t.Fatalf("span = (%d, %d), want (540, 585)", start, end)
	}
}

func TestSelectionNeverShrinksBelowAnchor(t *testing.T) {
	s := StartSelection(cell(2, plan.Husband, 9, 0))

	s = ExtendSelection(s, cell(2, plan.Husband, 10, 0))
	// Cells before the anchor leave the extent where it was.
	s = ExtendSelection(s, cell(2, plan.Husband, 8, 0))

	start, end := s.Span()
	if start != 540 || end != 615 {
		t.Fatalf("span = (%d, %d), want (540, 615)", start, end)
	}
}

func TestSelectionIgnoresOtherColumnsAndSides(t *testing.T) {
	s := StartSelection(cell(2, plan.Husband, 9, 0))

	s = ExtendSelection(s, cell(3, plan.Husband, 11, 0))
	s = ExtendSelection(s, cell(2, plan.Wife, 11, 0))

	start, end := s.Span()
	if start != 540 || end != 555 {
		t.Fatalf("span = (%d, %d), want the anchor cell only", start, end)
	}
}

func TestSelectionContains(t *testing.T) {
	s := StartSelection(cell(0, plan.Wife, 8, 0))
	s = ExtendSelection(s, cell(0, plan.Wife, 8, 45))

	if !s.Contains(cell(0, plan.Wife, 8, 30)) {
		t.Error("cell inside the sweep should highlight")
	}
	if s.Contains(cell(0, plan.Wife, 9, 0)) {
		t.Error("cell past the extent should not highlight")
	}
	if s.Contains(cell(0, plan.Husband, 8, 30)) {
		t.Error("other side should not highlight")
	}
}

func TestFinishSelectionSingleCell(t *testing.T) {
	// A press with no sweep still commits one slot.
	s := StartSelection(cell(4, plan.Wife, 14, 30))
	c := FinishSelection(s)

	if c.Day != plan.DayForColumn(4) || c.User != plan.Wife {
		t.Fatalf("intent targets (%d, %s)", c.Day, c.User)
	}
	if c.StartTime != "14:30" || c.EndTime != "14:45" {
		t.Fatalf("intent range %s-%s, want 14:30-14:45", c.StartTime, c.EndTime)
	}
}

func TestFinishSelectionToMidnight(t *testing.T) {
	s := StartSelection(cell(0, plan.Husband, 23, 0))
	s = ExtendSelection(s, cell(0, plan.Husband, 23, 45))
	c := FinishSelection(s)

	if c.EndTime != "00:00" {
		t.Fatalf("a sweep reaching the last slot ends at %q, want 00:00", c.EndTime)
	}
}

func TestDragMovesEvent(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", UserType: plan.Husband}

	d := StartDrag(e)
	d = DragOver(d, cell(plan.ColumnForDay(4), plan.Wife, 13, 15))
	m, ok, changed := FinishDrag(d)

	if !ok || !changed {
		t.Fatalf("ok=%v changed=%v", ok, changed)
	}
	if m.Day != 4 || m.User != plan.Wife {
		t.Errorf("moved to (%d, %s)", m.Day, m.User)
	}
	if m.StartTime != "13:15" || m.EndTime != "14:45" {
		t.Errorf("moved range %s-%s", m.StartTime, m.EndTime)
	}
}

func TestDragWithoutTargetCancels(t *testing.T) {
	d := StartDrag(plan.Event{ID: "1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"})
	if _, ok, _ := FinishDrag(d); ok {
		t.Fatal("release outside the grid should cancel")
	}
}

func TestDragToSamePlaceIsNoOp(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", UserType: plan.Wife}

	d := StartDrag(e)
	d = DragOver(d, cell(plan.ColumnForDay(2), plan.Wife, 9, 0))
	_, ok, changed := FinishDrag(d)

	if !ok {
		t.Fatal("drop on a valid cell must not cancel")
	}
	if changed {
		t.Fatal("drop on the original cell must not produce a mutation")
	}
}

func TestDragPreservesCombined(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", UserType: plan.Combined}

	d := StartDrag(e)
	d = DragOver(d, cell(plan.ColumnForDay(5), plan.Wife, 9, 0))
	m, _, changed := FinishDrag(d)

	if m.User != plan.Combined {
		t.Fatalf("combined event landed as %s", m.User)
	}
	if !changed {
		t.Fatal("day changed, so the move is real")
	}
}

func TestDragKeepsWrapDuration(t *testing.T) {
	// 22:30-06:30 is 8h; dropped at 10:00 it must end at 18:00.
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "22:30", EndTime: "06:30", UserType: plan.Husband}

	d := StartDrag(e)
	d = DragOver(d, cell(plan.ColumnForDay(3), plan.Husband, 10, 0))
	m, _, _ := FinishDrag(d)

	if m.StartTime != "10:00" || m.EndTime != "18:00" {
		t.Fatalf("moved range %s-%s, want 10:00-18:00", m.StartTime, m.EndTime)
	}
}

func TestDragIntoWrapReducesEndModulo(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", UserType: plan.Husband}

	d := StartDrag(e)
	d = DragOver(d, cell(plan.ColumnForDay(1), plan.Husband, 23, 0))
	m, _, _ := FinishDrag(d)

	if m.EndTime != "02:00" {
		t.Fatalf("end = %q, want 02:00", m.EndTime)
	}
}

var rgeom = grid.Geometry{HourHeight: 4}

func seg(e plan.Event) grid.Segment {
	segs := grid.SegmentsForColumn([]plan.Event{e}, plan.ColumnForDay(e.DayOfWeek), rgeom, nil)
	return segs[0]
}

func TestResizeQuantizesToSlots(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}
	s, ok := StartResize(seg(e), 40)
	if !ok {
		t.Fatal("plain segment must accept a resize")
	}

	// QuarterHeight is 1 row; 2.4 rows of travel round to 2 slots.
	s = ResizeTo(s, 42.4, rgeom)
	if got := s.Preview().EndTime; got != "10:30" {
		t.Fatalf("end = %q, want 10:30", got)
	}

	// 2.6 rounds to 3.
	s = ResizeTo(s, 42.6, rgeom)
	if got := s.Preview().EndTime; got != "10:45" {
		t.Fatalf("end = %q, want 10:45", got)
	}
}

func TestResizeClampsToMinimumDuration(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}
	s, _ := StartResize(seg(e), 40)

	s = ResizeTo(s, -100, rgeom)
	if got := s.Preview().EndTime; got != "09:15" {
		t.Fatalf("end = %q, want the 15-minute floor", got)
	}
}

func TestResizeRefusesMidnightSegment(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "22:30", EndTime: "06:30"}
	if _, ok := StartResize(seg(e), 90); ok {
		t.Fatal("the first-day part of a wrap has no real bottom edge")
	}
}

func TestResizeContinuationStaysContinuous(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "22:30", EndTime: "06:30"}
	cont := grid.SegmentsForColumn([]plan.Event{e}, plan.ColumnForDay(2), rgeom, nil)[0]
	if !cont.Continuation {
		t.Fatal("expected the continuation segment")
	}

	s, ok := StartResize(cont, 26)
	if !ok {
		t.Fatal("continuation segments are resizable")
	}

	// One row up is one slot off the real end.
	s = ResizeTo(s, 25, rgeom)
	if got := s.Preview().EndTime; got != "06:15" {
		t.Fatalf("end = %q, want 06:15", got)
	}
	r, changed := FinishResize(s)
	if !changed || r.EndTime != "06:15" {
		t.Fatalf("commit = %+v changed=%v", r, changed)
	}
}

func TestResizePastMidnightEnd(t *testing.T) {
	// End 00:00 means to-end-of-day; growing from there crosses into a wrap.
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "20:00", EndTime: "00:00"}
	s, _ := StartResize(seg(e), 96)

	s = ResizeTo(s, 98, rgeom)
	if got := s.Preview().EndTime; got != "00:30" {
		t.Fatalf("end = %q, want 00:30", got)
	}
}

func TestResizeNoChangeDoesNotCommit(t *testing.T) {
	e := plan.Event{ID: "1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}
	s, _ := StartResize(seg(e), 40)
	s = ResizeTo(s, 40.2, rgeom)

	if _, changed := FinishResize(s); changed {
		t.Fatal("sub-slot travel must not produce a mutation")
	}
}
