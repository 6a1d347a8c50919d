package store

import (
	"database/sql"
	"fmt"
)

// Folder is a persisted folder assignment. CategoryID and UserName are
// nullable: a folder whose category was deleted keeps its row with a
// null reference.
type Folder struct {
	ID         int64
	Path       string
	CategoryID sql.NullInt64
	UserName   sql.NullString
}

// FolderCategory is one row of the folder/category inner join
type FolderCategory struct {
	Path         string
	CategoryID   int64
	CategoryName string
	UserName     sql.NullString
}

// UpsertFolder inserts or replaces a folder assignment keyed by path.
// Last write wins. When userName is nil an existing owning-user tag is
// preserved; a non-nil value overwrites it.
func (s *Store) UpsertFolder(path string, categoryID int64, userName *string) error {
	var err error
	if userName == nil {
		_, err = s.db.Exec(`
			INSERT INTO folders (path, category_id)
			VALUES (?, ?)
			ON CONFLICT(path) DO UPDATE SET
				category_id = excluded.category_id
		`, path, categoryID)
	} else {
		_, err = s.db.Exec(`
			INSERT INTO folders (path, category_id, user_name)
			VALUES (?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				category_id = excluded.category_id,
				user_name = excluded.user_name
		`, path, categoryID, *userName)
	}

	if err != nil {
		return fmt.Errorf("failed to upsert folder %s: %w", path, err)
	}
	return nil
}

// GetFolder retrieves a folder assignment by path, or nil if absent
func (s *Store) GetFolder(path string) (*Folder, error) {
	f := &Folder{}
	err := s.db.QueryRow(`
		SELECT id, path, category_id, user_name
		FROM folders WHERE path = ?
	`, path).Scan(&f.ID, &f.Path, &f.CategoryID, &f.UserName)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	return f, nil
}

// ListFoldersWithCategories returns folders whose category reference
// resolves, ordered by path. The join is inner by design: folders with a
// null or dangling category are invisible here and must be found by
// diffing against ListAllFolders.
func (s *Store) ListFoldersWithCategories() ([]*FolderCategory, error) {
	rows, err := s.db.Query(`
		SELECT f.path, f.category_id, c.name, f.user_name
		FROM folders f
		JOIN categories c ON f.category_id = c.id
		ORDER BY f.path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query folder categories: %w", err)
	}
	defer rows.Close()

	var folders []*FolderCategory
	for rows.Next() {
		fc := &FolderCategory{}
		if err := rows.Scan(&fc.Path, &fc.CategoryID, &fc.CategoryName, &fc.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan folder category: %w", err)
		}
		folders = append(folders, fc)
	}

	return folders, rows.Err()
}

// ListAllFolders returns every folder assignment, including rows with a
// null category reference, ordered by path
func (s *Store) ListAllFolders() ([]*Folder, error) {
	rows, err := s.db.Query(`
		SELECT id, path, category_id, user_name
		FROM folders
		ORDER BY path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []*Folder
	for rows.Next() {
		f := &Folder{}
		if err := rows.Scan(&f.ID, &f.Path, &f.CategoryID, &f.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}

// DeleteFolder removes a folder assignment by path
func (s *Store) DeleteFolder(path string) error {
	if _, err := s.db.Exec("DELETE FROM folders WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete folder %s: %w", path, err)
	}
	return nil
}

// SetAllFolderUsers stamps every folder assignment with the given
// owning-user tag and returns the number of rows touched
func (s *Store) SetAllFolderUsers(userName string) (int64, error) {
	result, err := s.db.Exec("UPDATE folders SET user_name = ?", userName)
	if err != nil {
		return 0, fmt.Errorf("failed to update folder users: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated folders: %w", err)
	}
	return affected, nil
}
