// Package grid converts abstract time intervals into rectangles on the
// weekly day/column grid and resolves pointer positions back to grid cells.
// Everything here is pure; the tui package feeds it terminal coordinates.
package grid

import "weekplan/internal/plan"

// Zoom bounds for the vertical scale. One unit is one terminal row, so the
// default of 4 gives one row per quarter hour.
const (
	DefaultHourHeight = 4.0
	MinHourHeight     = 2.0
	MaxHourHeight     = 12.0
)

// Geometry holds the vertical scale of the grid. HourHeight is the number
// of rows representing one hour; any positive value works.
type Geometry struct {
	HourHeight float64
}

// QuarterHeight is the height of one 15-minute cell, the minimum visual and
// interaction granularity.
func (g Geometry) QuarterHeight() float64 {
	return g.HourHeight / 4
}

// SpanRect maps a same-day interval to a (top, height) pair. An end of 0
// means the interval runs to midnight and is treated as 1440.
func (g Geometry) SpanRect(startMin, endMin int) (top, height float64) {
	if endMin == 0 {
		endMin = plan.MinutesPerDay
	}
	top = float64(startMin) / 60 * g.HourHeight
	height = float64(endMin-startMin) / 60 * g.HourHeight
	return top, height
}

// ClampZoom bounds a requested hour height to the supported zoom range.
func ClampZoom(h float64) float64 {
	if h < MinHourHeight {
		return MinHourHeight
	}
	if h > MaxHourHeight {
		return MaxHourHeight
	}
	return h
}
