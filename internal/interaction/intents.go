package interaction

import "weekplan/internal/plan"

// CreateSpan asks for a new event covering the selected range. The title
// and category are filled in by the editor before the event is saved.
type CreateSpan struct {
	Day       int
	User      plan.UserType
	StartTime string
	EndTime   string
}

// Move asks for an existing event to be rescheduled to a new day, side
// and start, keeping its duration.
type Move struct {
	EventID   string
	Day       int
	User      plan.UserType
	StartTime string
	EndTime   string
}

// Resize asks for an existing event's end time to change.
type Resize struct {
	EventID string
	EndTime string
}
