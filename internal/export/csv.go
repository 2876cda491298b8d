package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"weekplan/internal/plan"
)

// sortedForExport orders events the way the grid shows them: Monday's
// column first, then by start time.
func sortedForExport(events []plan.Event) []plan.Event {
	out := make([]plan.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := plan.ColumnForDay(out[i].DayOfWeek), plan.ColumnForDay(out[j].DayOfWeek)
		if ci != cj {
			return ci < cj
		}
		return out[i].StartMinutes() < out[j].StartMinutes()
	})
	return out
}

func categoryName(cats []plan.Category, id string) string {
	for _, c := range cats {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}

func dayName(day int) string {
	if col := plan.ColumnForDay(day); col >= 0 {
		return plan.DayNames[col]
	}
	return "Unknown"
}

func ToCSV(events []plan.Event, cats []plan.Category, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Title", "Day", "Start", "End", "Duration", "Side", "Week", "Category", "Description"}); err != nil {
		return err
	}

	for _, e := range sortedForExport(events) {
		row := []string{
			e.ID,
			e.Title,
			dayName(e.DayOfWeek),
			e.StartTime,
			e.EndTime,
			formatDuration(e.DurationMinutes()),
			string(e.UserType),
			string(e.WeekType),
			categoryName(cats, e.CategoryID),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
