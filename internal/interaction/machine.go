// Package interaction holds the pointer state machine for the planner
// grid. States are plain values and every transition is a pure function,
// so the whole drag/select/resize lifecycle is testable without a
// terminal. The tui package owns the current State and feeds it mouse
// coordinates; committed gestures come back as mutation intents.
package interaction

import (
	"math"

	"weekplan/internal/grid"
	"weekplan/internal/plan"
)

// State is one of Idle, RangeSelecting, Dragging or Resizing.
type State interface {
	isState()
}

// Idle means no gesture is in progress.
type Idle struct{}

// RangeSelecting is an in-progress press-and-sweep over empty cells. The
// end tracks the pointer below the anchor and never leaves the anchor's
// column and side.
type RangeSelecting struct {
	Anchor grid.Cell
	Latest grid.Cell
}

// Dragging is an event being carried to a new cell. Duration is captured
// at grab time so wrapping events keep their true length.
type Dragging struct {
	Event     plan.Event
	Duration  int
	Target    grid.Cell
	HasTarget bool
}

// Resizing adjusts an event's end by dragging its bottom edge. Baseline
// and EndAbs are minutes from the event's own midnight and may exceed
// 1440 when the event runs past it.
type Resizing struct {
	Event    plan.Event
	GrabY    float64
	Baseline int
	EndAbs   int
}

func (Idle) isState()           {}
func (RangeSelecting) isState() {}
func (Dragging) isState()       {}
func (Resizing) isState()       {}

// StartSelection begins a range selection at the pressed cell.
func StartSelection(c grid.Cell) RangeSelecting {
	return RangeSelecting{Anchor: c, Latest: c}
}

// ExtendSelection moves the selection end to the entered cell, so the
// extent follows the pointer both down and back up toward the anchor.
// Cells in another column or on the other side are ignored, as are cells
// above the anchor: the selection never shrinks below its first slot.
func ExtendSelection(s RangeSelecting, c grid.Cell) RangeSelecting {
	if c.Column != s.Anchor.Column || c.User != s.Anchor.User {
		return s
	}
	if c.Minutes() < s.Anchor.Minutes() {
		return s
	}
	s.Latest = c
	return s
}

// Span is the selected interval in minutes; the end is exclusive, one
// slot past the last selected cell, so a single cell spans 15 minutes.
func (s RangeSelecting) Span() (startMin, endMin int) {
	return s.Anchor.Minutes(), s.Latest.Minutes() + plan.SlotMinutes
}

// Contains reports whether a cell is part of the selection, for
// highlighting while the sweep is live.
func (s RangeSelecting) Contains(c grid.Cell) bool {
	if c.Column != s.Anchor.Column || c.User != s.Anchor.User {
		return false
	}
	return c.Minutes() >= s.Anchor.Minutes() && c.Minutes() <= s.Latest.Minutes()
}

// FinishSelection commits the selection as a create intent. Releasing
// always commits; even a single pressed cell yields a 15-minute span.
func FinishSelection(s RangeSelecting) CreateSpan {
	startMin, endMin := s.Span()
	return CreateSpan{
		Day:       plan.DayForColumn(s.Anchor.Column),
		User:      s.Anchor.User,
		StartTime: plan.ToTime(startMin),
		EndTime:   plan.ToTime(endMin),
	}
}

// StartDrag picks an event up.
func StartDrag(e plan.Event) Dragging {
	return Dragging{Event: e, Duration: e.DurationMinutes()}
}

// DragOver records the cell currently under the carried event.
func DragOver(d Dragging, c grid.Cell) Dragging {
	d.Target = c
	d.HasTarget = true
	return d
}

// FinishDrag drops the event. ok is false when the pointer never reached
// a valid cell, which cancels the gesture. changed is false when the drop
// lands exactly where the event already is, so callers can skip the
// mutation entirely.
func FinishDrag(d Dragging) (m Move, ok, changed bool) {
	if !d.HasTarget {
		return Move{}, false, false
	}
	day := plan.DayForColumn(d.Target.Column)
	startMin := d.Target.Minutes()

	user := d.Target.User
	if d.Event.UserType == plan.Combined {
		user = plan.Combined
	}

	m = Move{
		EventID:   d.Event.ID,
		Day:       day,
		User:      user,
		StartTime: plan.ToTime(startMin),
		EndTime:   plan.ToTime(startMin + d.Duration),
	}
	changed = day != d.Event.DayOfWeek ||
		user != d.Event.UserType ||
		startMin != d.Event.StartMinutes()
	return m, true, changed
}

// StartResize grabs a segment's bottom edge. Midnight segments refuse the
// gesture: their visible bottom is the day boundary, not the event's end.
// The baseline end is expressed as minutes from the event's start day, so
// an event reaching into the next day has a baseline past 1440 and the
// resize stays continuous across the boundary.
func StartResize(seg grid.Segment, y float64) (Resizing, bool) {
	if seg.Midnight {
		return Resizing{}, false
	}
	base := seg.Event.StartMinutes() + seg.Event.DurationMinutes()
	return Resizing{Event: seg.Event, GrabY: y, Baseline: base, EndAbs: base}, true
}

// ResizeTo moves the dragged edge to pointer row y. The travel since the
// grab is quantized to whole 15-minute slots; the result is clamped so
// the event keeps at least one slot and never reaches a full day.
func ResizeTo(s Resizing, y float64, g grid.Geometry) Resizing {
	slots := int(math.Round((y - s.GrabY) / g.QuarterHeight()))
	end := s.Baseline + slots*plan.SlotMinutes

	start := s.Event.StartMinutes()
	if end < start+plan.MinDuration {
		end = start + plan.MinDuration
	}
	if max := start + plan.MinutesPerDay - plan.SlotMinutes; end > max {
		end = max
	}
	s.EndAbs = end
	return s
}

// Preview exposes the live end time for rendering without touching the
// event collection.
func (s Resizing) Preview() grid.ResizePreview {
	return grid.ResizePreview{EventID: s.Event.ID, EndTime: plan.ToTime(s.EndAbs)}
}

// FinishResize commits the resize. changed is false when the edge ended
// up exactly where it started.
func FinishResize(s Resizing) (r Resize, changed bool) {
	end := plan.ToTime(s.EndAbs)
	return Resize{EventID: s.Event.ID, EndTime: end}, end != s.Event.EndTime
}
