package store

import (
	"database/sql"
	"fmt"
	"time"
)

// CatalogItem is one row of the mirrored media-server catalog. ParentID
// forms a tree by convention only; it is not enforced referentially.
type CatalogItem struct {
	ItemID   string
	Title    string
	Path     sql.NullString
	Type     string
	ParentID sql.NullString
	ScanDate time.Time
}

// TypeCount is a per-type row count of the catalog mirror
type TypeCount struct {
	Type  string
	Count int
}

// ClearCatalog removes every mirrored item, typically before a rescan
func (s *Store) ClearCatalog() error {
	if _, err := s.db.Exec("DELETE FROM catalog_items"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	return nil
}

// UpsertCatalogItem inserts or replaces a catalog item keyed by its
// remote-assigned id. Each upsert commits independently; catalog sizes
// are low thousands, so batching is not worth the bookkeeping.
func (s *Store) UpsertCatalogItem(item *CatalogItem) error {
	_, err := s.db.Exec(`
		INSERT INTO catalog_items (item_id, title, path, type, parent_id, scan_date)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(item_id) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			type = excluded.type,
			parent_id = excluded.parent_id,
			scan_date = CURRENT_TIMESTAMP
	`, item.ItemID, item.Title, item.Path, item.Type, item.ParentID)

	if err != nil {
		return fmt.Errorf("failed to upsert catalog item %s: %w", item.ItemID, err)
	}
	return nil
}

// CountCatalogItems returns the total number of mirrored items
func (s *Store) CountCatalogItems() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM catalog_items").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count catalog items: %w", err)
	}
	return count, nil
}

// CountCatalogByType returns per-type item counts, most numerous first
func (s *Store) CountCatalogByType() ([]*TypeCount, error) {
	rows, err := s.db.Query(`
		SELECT type, COUNT(*) FROM catalog_items
		GROUP BY type
		ORDER BY COUNT(*) DESC, type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog types: %w", err)
	}
	defer rows.Close()

	var counts []*TypeCount
	for rows.Next() {
		tc := &TypeCount{}
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		counts = append(counts, tc)
	}

	return counts, rows.Err()
}

// CatalogChildren returns the items whose parent is the given item id,
// ordered by title
func (s *Store) CatalogChildren(parentID string) ([]*CatalogItem, error) {
	rows, err := s.db.Query(`
		SELECT item_id, title, path, type, parent_id, scan_date
		FROM catalog_items
		WHERE parent_id = ?
		ORDER BY title
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog children: %w", err)
	}
	defer rows.Close()

	return scanCatalogItems(rows)
}

// CatalogRoots returns the items without a parent. The remote server
// reports rootless items with either a NULL or an empty parent id; both
// count as roots.
func (s *Store) CatalogRoots() ([]*CatalogItem, error) {
	rows, err := s.db.Query(`
		SELECT item_id, title, path, type, parent_id, scan_date
		FROM catalog_items
		WHERE parent_id IS NULL OR parent_id = ''
		ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog roots: %w", err)
	}
	defer rows.Close()

	return scanCatalogItems(rows)
}

// SearchCatalogByTitle returns items whose title contains the keyword,
// ordered by title
func (s *Store) SearchCatalogByTitle(keyword string) ([]*CatalogItem, error) {
	rows, err := s.db.Query(`
		SELECT item_id, title, path, type, parent_id, scan_date
		FROM catalog_items
		WHERE title LIKE ?
		ORDER BY title
	`, "%"+keyword+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog titles: %w", err)
	}
	defer rows.Close()

	return scanCatalogItems(rows)
}

// SearchCatalogByPath returns items whose path contains the keyword,
// ordered by path
func (s *Store) SearchCatalogByPath(keyword string) ([]*CatalogItem, error) {
	rows, err := s.db.Query(`
		SELECT item_id, title, path, type, parent_id, scan_date
		FROM catalog_items
		WHERE path LIKE ?
		ORDER BY path
	`, "%"+keyword+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog paths: %w", err)
	}
	defer rows.Close()

	return scanCatalogItems(rows)
}

func scanCatalogItems(rows *sql.Rows) ([]*CatalogItem, error) {
	var items []*CatalogItem
	for rows.Next() {
		item := &CatalogItem{}
		err := rows.Scan(&item.ItemID, &item.Title, &item.Path, &item.Type, &item.ParentID, &item.ScanDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
