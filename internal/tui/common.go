package tui

import (
	"fmt"

	"weekplan/internal/plan"
)

// viewState represents the currently active view.
type viewState int

const (
	viewPlanner viewState = iota
	viewStats
	viewCategories
)

var viewNames = []string{"Planner", "Stats", "Categories"}

// --- Messages ---

// collectionMsg carries a full load of the planning state. It is sent at
// startup, on explicit refreshes, and as the rollback after a failed
// mutation.
type collectionMsg struct {
	events     []plan.Event
	categories []plan.Category
}

// settingsMsg carries the persisted UI settings at startup.
type settingsMsg struct {
	zoom float64
	week plan.WeekType
}

// eventSavedMsg reports a successful background save of a new event.
// tempID is the placeholder id the optimistic copy was rendered under.
type eventSavedMsg struct {
	tempID string
	saved  plan.Event
}

// mutationDoneMsg reports a successful background update or delete.
type mutationDoneMsg struct{}

// mutationErrMsg reports a failed background mutation; the collection is
// refetched to roll the optimistic change back.
type mutationErrMsg struct {
	err error
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// editorDoneMsg reports that the event editor closed; saved is false when
// the form was cancelled.
type editorDoneMsg struct {
	saved bool
}

// --- Helpers ---

func formatMinutes(mins int) string {
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func sideLabel(u plan.UserType) string {
	switch u {
	case plan.Husband:
		return "Him"
	case plan.Wife:
		return "Her"
	default:
		return "Both"
	}
}
