package store

import (
	"fmt"
	"strconv"

	"weekplan/internal/plan"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Zoom returns the persisted vertical scale in rows per hour.
func (s *Store) Zoom() (float64, error) {
	v, err := s.GetSetting("zoom")
	if err != nil {
		return 0, err
	}
	z, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse zoom %q: %w", v, err)
	}
	return z, nil
}

func (s *Store) SetZoom(z float64) error {
	return s.SetSetting("zoom", strconv.FormatFloat(z, 'g', -1, 64))
}

// ActiveWeek returns which alternating week is currently displayed.
func (s *Store) ActiveWeek() (plan.WeekType, error) {
	v, err := s.GetSetting("active_week")
	if err != nil {
		return "", err
	}
	return plan.WeekType(v), nil
}

func (s *Store) SetActiveWeek(w plan.WeekType) error {
	return s.SetSetting("active_week", string(w))
}
