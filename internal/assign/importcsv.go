package assign

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/franz/playlist-curator/internal/store"
	"github.com/franz/playlist-curator/internal/util"
)

// ImportResult summarizes a bulk import
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportCSV reads two-column rows (folder path, category id) and upserts
// one folder assignment per row. Malformed rows and rows referencing an
// unknown category are reported and skipped; later rows still import.
// When userTag is non-nil every imported row is stamped with it.
func ImportCSV(st *store.Store, r io.Reader, userTag *string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row width is validated per row
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			util.WarnLog("Skipping unreadable row %d: %v", line, err)
			result.Skipped++
			continue
		}

		if len(record) < 2 {
			util.WarnLog("Skipping row %d: needs at least 2 columns", line)
			result.Skipped++
			continue
		}

		path := strings.TrimSpace(record[0])
		if path == "" {
			util.WarnLog("Skipping row %d: empty folder path", line)
			result.Skipped++
			continue
		}

		categoryID, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			util.WarnLog("Skipping row %d: invalid category id %q", line, record[1])
			result.Skipped++
			continue
		}

		cat, err := st.GetCategory(categoryID)
		if err != nil {
			return result, fmt.Errorf("failed to look up category %d: %w", categoryID, err)
		}
		if cat == nil {
			util.WarnLog("Skipping row %d: category id %d does not exist", line, categoryID)
			result.Skipped++
			continue
		}

		if err := st.UpsertFolder(path, categoryID, userTag); err != nil {
			return result, err
		}
		result.Imported++
	}

	return result, nil
}
