package grid

import "weekplan/internal/plan"

// sampleInset nudges the sampled point inward so a coordinate on a shared
// cell edge resolves to exactly one cell.
const sampleInset = 0.5

// Cell is a discrete drop target: one quarter-hour on one side of one day
// column. User is always husband or wife; combined events keep their type
// at drop time regardless of the target side.
type Cell struct {
	Column int
	User   plan.UserType
	Hour   int
	Minute int // 0, 15, 30 or 45
}

// Minutes is the cell's start as minutes since midnight.
func (c Cell) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Rect is an axis-aligned rectangle in grid coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle. Edges on
// the right and bottom are exclusive so adjacent rectangles never both
// claim a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout positions the grid on screen: a time gutter on the left followed
// by seven day columns, each split into two half-width sub-columns.
type Layout struct {
	Geom        Geometry
	GutterWidth float64
	DayWidth    float64
}

// CellRect returns the rectangle occupied by a cell.
func (l Layout) CellRect(c Cell) Rect {
	x := l.GutterWidth + float64(c.Column)*l.DayWidth
	if c.User == plan.Wife {
		x += l.DayWidth / 2
	}
	return Rect{
		X: x,
		Y: float64(c.Minutes()) / 60 * l.Geom.HourHeight,
		W: l.DayWidth / 2,
		H: l.Geom.QuarterHeight(),
	}
}

// ResolveCell maps a point (the pointer, or the top-left corner of a
// dragged segment) to the single cell containing it. A bounding box can
// overlap many quarter cells at once, so only this one sampled point
// decides the target; points outside the grid report ok=false.
func (l Layout) ResolveCell(x, y float64) (Cell, bool) {
	px := x + sampleInset
	py := y + sampleInset

	if px < l.GutterWidth || py < 0 || l.DayWidth <= 0 {
		return Cell{}, false
	}
	col := int((px - l.GutterWidth) / l.DayWidth)
	if col < 0 || col > 6 {
		return Cell{}, false
	}
	quarter := int(py / l.Geom.QuarterHeight())
	if quarter < 0 || quarter >= plan.MinutesPerDay/plan.SlotMinutes {
		return Cell{}, false
	}

	user := plan.Husband
	if px-l.GutterWidth-float64(col)*l.DayWidth >= l.DayWidth/2 {
		user = plan.Wife
	}
	return Cell{
		Column: col,
		User:   user,
		Hour:   quarter / 4,
		Minute: (quarter % 4) * plan.SlotMinutes,
	}, true
}

// SegmentRect returns the on-screen rectangle of a segment, lane included.
func (l Layout) SegmentRect(s Segment) Rect {
	off, w := s.Lane()
	return Rect{
		X: l.GutterWidth + float64(s.Column)*l.DayWidth + off*l.DayWidth,
		Y: s.Top,
		W: w * l.DayWidth,
		H: s.Height,
	}
}

// SegmentAt finds the segment under a point. Later segments are drawn on
// top, so the last match wins.
func (l Layout) SegmentAt(segs []Segment, x, y float64) (Segment, bool) {
	var hit Segment
	found := false
	for _, s := range segs {
		if l.SegmentRect(s).Contains(x, y) {
			hit = s
			found = true
		}
	}
	return hit, found
}

// OnResizeHandle reports whether the point sits on the segment's resize
// affordance: the bottom edge row. Midnight segments never offer one
// because their true end lives on the next day's segment.
func (l Layout) OnResizeHandle(s Segment, x, y float64) bool {
	if s.Midnight {
		return false
	}
	r := l.SegmentRect(s)
	if !r.Contains(x, y) {
		return false
	}
	edge := r.H
	if edge > 1 {
		edge = 1
	}
	return y >= r.Y+r.H-edge
}
