package grid

import "weekplan/internal/plan"

// Segment is one rendered rectangle for an event on one day column. An
// event contributes one segment to its own column and, when it wraps past
// midnight, a second continuation segment to the following column.
type Segment struct {
	Event  plan.Event
	Column int

	Top    float64
	Height float64

	// Display interval within the column; EndMin is 1440 for a segment
	// that runs to the end of the day.
	StartMin int
	EndMin   int

	// Midnight marks the first-day part of a wrapping event. Its visible
	// end is the day boundary, not the event's real end, so it carries no
	// resize handle.
	Midnight bool
	// Continuation marks the second-day part of a wrapping event.
	Continuation bool
}

// Lane returns the horizontal placement of the segment as fractions of the
// day column: combined events span the full width, husband the left half,
// wife the right half.
func (s Segment) Lane() (offset, width float64) {
	switch s.Event.UserType {
	case plan.Combined:
		return 0, 1
	case plan.Wife:
		return 0.5, 0.5
	default:
		return 0, 0.5
	}
}

// DisplayStart is the segment's visible start time.
func (s Segment) DisplayStart() string {
	return plan.ToTime(s.StartMin)
}

// DisplayEnd is the segment's visible end time; a segment reaching the day
// boundary shows "24:00".
func (s Segment) DisplayEnd() string {
	if s.EndMin == plan.MinutesPerDay {
		return "24:00"
	}
	return plan.ToTime(s.EndMin)
}

// ResizePreview substitutes a live end time for one event during a resize,
// so the grid re-renders immediately without touching the collection.
type ResizePreview struct {
	EventID string
	EndTime string
}

// SegmentsForColumn produces the renderable segments for one display
// column. Which columns an event appears in is decided by its persisted
// times; the preview only reshapes the segments themselves.
func SegmentsForColumn(events []plan.Event, col int, g Geometry, preview *ResizePreview) []Segment {
	day := plan.DayForColumn(col)
	var segs []Segment

	for _, e := range events {
		isStartDay := e.DayOfWeek == day
		isEndDay := plan.NextDay(e.DayOfWeek) == day && e.Wraps()
		if !isStartDay && !isEndDay {
			continue
		}

		shown := e
		if preview != nil && preview.EventID == e.ID {
			shown.EndTime = preview.EndTime
		}
		start := shown.StartMinutes()
		end := shown.EndMinutes()
		wraps := plan.IsWrap(start, end)

		seg := Segment{Event: e, Column: col}
		switch {
		case wraps && isStartDay:
			seg.StartMin, seg.EndMin = start, plan.MinutesPerDay
			seg.Midnight = true
		case wraps && isEndDay:
			seg.StartMin, seg.EndMin = 0, end
			seg.Continuation = true
		case isStartDay:
			seg.StartMin = start
			if end == 0 {
				seg.EndMin = plan.MinutesPerDay
			} else {
				seg.EndMin = end
			}
		default:
			// Continuation column, but the preview no longer wraps:
			// nothing to draw here.
			continue
		}

		seg.Top, seg.Height = g.SpanRect(seg.StartMin, seg.EndMin)
		segs = append(segs, seg)
	}
	return segs
}

// GhostSegments renders a hypothetical event (the drag ghost) at a
// candidate position: same duration as src, started at startMin on the
// given day, on the side the drop would assign. The ghost goes through the
// same segmentation as real events, so it splits at midnight too.
func GhostSegments(src plan.Event, day, startMin int, user plan.UserType, col int, g Geometry) []Segment {
	ghost := src
	ghost.DayOfWeek = day
	ghost.StartTime = plan.ToTime(startMin)
	ghost.EndTime = plan.ToTime(startMin + src.DurationMinutes())
	if src.UserType != plan.Combined {
		ghost.UserType = user
	}
	return SegmentsForColumn([]plan.Event{ghost}, col, g, nil)
}
