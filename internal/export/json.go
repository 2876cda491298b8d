package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"weekplan/internal/plan"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Events     []jsonEvent `json:"events"`
}

type jsonEvent struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Day          string `json:"day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DurationMins int    `json:"duration_minutes"`
	Duration     string `json:"duration"`
	Side         string `json:"side"`
	Week         string `json:"week"`
	Category     string `json:"category"`
	Description  string `json:"description,omitempty"`
}

func ToJSON(events []plan.Event, cats []plan.Category, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(events),
	}

	for _, e := range sortedForExport(events) {
		export.Events = append(export.Events, jsonEvent{
			ID:           e.ID,
			Title:        e.Title,
			Day:          dayName(e.DayOfWeek),
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
			DurationMins: e.DurationMinutes(),
			Duration:     formatDuration(e.DurationMinutes()),
			Side:         string(e.UserType),
			Week:         string(e.WeekType),
			Category:     categoryName(cats, e.CategoryID),
			Description:  e.Description,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
