package store

import (
	"fmt"

	"github.com/google/uuid"

	"weekplan/internal/plan"
)

// CreateCategory adds a custom category. The built-in ids are reserved;
// inserting one of them fails on the merged-name uniqueness check below.
func (s *Store) CreateCategory(name, color string) (plan.Category, error) {
	c := plan.Category{ID: uuid.NewString(), Name: name, Color: color}
	_, err := s.db.Exec(
		`INSERT INTO categories (id, name, color) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Color,
	)
	if err != nil {
		return plan.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

// ListCategories returns the built-in categories followed by the custom
// ones, sorted by name within the custom block.
func (s *Store) ListCategories() ([]plan.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var custom []plan.Category
	for rows.Next() {
		var c plan.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		custom = append(custom, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plan.MergeCategories(custom), nil
}

// DeleteCategory removes a custom category and, in the same transaction,
// reassigns its events to the default category so no event is left
// pointing at a missing id. Built-in categories are refused up front.
func (s *Store) DeleteCategory(id string) error {
	if plan.IsFixedCategory(id) {
		return fmt.Errorf("category %s: %w", id, ErrFixedCategory)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}

	if _, err := tx.Exec(
		`UPDATE events SET category_id = ? WHERE category_id = ?`,
		plan.DefaultCategoryID, id,
	); err != nil {
		return fmt.Errorf("reassign events of category %s: %w", id, err)
	}
	return tx.Commit()
}
