package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"weekplan/internal/plan"
)

const eventColumns = `id, title, description, category_id, day_of_week, start_time, end_time, user_type, week_type`

// CreateEvent inserts a new event. A missing ID is filled with a fresh
// UUID; the stored event is returned.
func (s *Store) CreateEvent(e plan.Event) (plan.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CategoryID == "" {
		e.CategoryID = plan.DefaultCategoryID
	}
	if e.WeekType == "" {
		e.WeekType = plan.WeekBoth
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO events (`+eventColumns+`, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.CategoryID, e.DayOfWeek,
		e.StartTime, e.EndTime, string(e.UserType), string(e.WeekType),
		now, now,
	)
	if err != nil {
		return plan.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// GetEvent fetches one event by id.
func (s *Store) GetEvent(id string) (plan.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return plan.Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return plan.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return e, nil
}

// UpdateEvent overwrites all mutable fields of an event.
func (s *Store) UpdateEvent(e plan.Event) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE events
		 SET title = ?, description = ?, category_id = ?, day_of_week = ?,
		     start_time = ?, end_time = ?, user_type = ?, week_type = ?,
		     updated_at = ?
		 WHERE id = ?`,
		e.Title, e.Description, e.CategoryID, e.DayOfWeek,
		e.StartTime, e.EndTime, string(e.UserType), string(e.WeekType),
		now, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event %s: %w", e.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

// DeleteEvent removes an event.
func (s *Store) DeleteEvent(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListEvents returns every event, ordered stably so render output does not
// shuffle between refreshes.
func (s *Store) ListEvents() ([]plan.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY day_of_week, start_time, id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []plan.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListAll loads the whole planning state in one call; the TUI uses it both
// at startup and to refetch after a failed optimistic mutation.
func (s *Store) ListAll() ([]plan.Event, []plan.Category, error) {
	events, err := s.ListEvents()
	if err != nil {
		return nil, nil, err
	}
	cats, err := s.ListCategories()
	if err != nil {
		return nil, nil, err
	}
	return events, cats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(r rowScanner) (plan.Event, error) {
	var e plan.Event
	var user, week string
	err := r.Scan(&e.ID, &e.Title, &e.Description, &e.CategoryID, &e.DayOfWeek,
		&e.StartTime, &e.EndTime, &user, &week)
	if err != nil {
		return plan.Event{}, err
	}
	e.UserType = plan.UserType(user)
	e.WeekType = plan.WeekType(week)
	return e, nil
}
