package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/franz/playlist-curator/internal/util"
	"golang.org/x/text/unicode/norm"
)

// Category is a user-defined named bucket that folders are assigned to
type Category struct {
	ID   int64
	Name string
}

// CreateCategory inserts a new category and returns it.
// Ids are assigned as max(existing)+1 (0 for an empty table) instead of
// relying on AUTOINCREMENT, preserving the id scheme of older databases
// whose ids carry gaps from past deletions.
// Returns util.ErrDuplicateName if the name is already taken and
// util.ErrInvalidInput for an empty name.
func (s *Store) CreateCategory(name string) (*Category, error) {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty: %w", util.ErrInvalidInput)
	}

	var maxID sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(id) FROM categories").Scan(&maxID); err != nil {
		return nil, fmt.Errorf("failed to determine next category id: %w", err)
	}

	newID := int64(0)
	if maxID.Valid {
		newID = maxID.Int64 + 1
	}

	_, err := s.db.Exec("INSERT INTO categories (id, name) VALUES (?, ?)", newID, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q already exists: %w", name, util.ErrDuplicateName)
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &Category{ID: newID, Name: name}, nil
}

// DeleteCategory removes a category. Folder assignments referencing it are
// kept but their category reference is nulled, never deleted.
func (s *Store) DeleteCategory(id int64) error {
	result, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("category %d: %w", id, util.ErrNotFound)
	}

	if _, err := s.db.Exec("UPDATE folders SET category_id = NULL WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("failed to detach folders from category: %w", err)
	}

	return nil
}

// GetCategory retrieves a category by id, or nil if it does not exist
func (s *Store) GetCategory(id int64) (*Category, error) {
	c := &Category{}
	err := s.db.QueryRow("SELECT id, name FROM categories WHERE id = ?", id).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// GetCategoryByName retrieves a category by name, or nil if it does not exist
func (s *Store) GetCategoryByName(name string) (*Category, error) {
	name = strings.TrimSpace(norm.NFC.String(name))
	c := &Category{}
	err := s.db.QueryRow("SELECT id, name FROM categories WHERE name = ?", name).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// ListCategories retrieves all categories ordered by name
func (s *Store) ListCategories() ([]*Category, error) {
	rows, err := s.db.Query("SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CountCategories returns the number of categories
func (s *Store) CountCategories() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// CountFoldersInCategory returns how many folder assignments reference a category
func (s *Store) CountFoldersInCategory(id int64) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM folders WHERE category_id = ?", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count folders: %w", err)
	}
	return count, nil
}
