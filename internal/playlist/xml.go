package playlist

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/franz/playlist-curator/internal/util"
)

// xmlHeader is written verbatim; encoding/xml's stock header lacks the
// standalone attribute the media server's importer expects
const xmlHeader = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>` + "\n"

// addedTimeFormat renders MM/DD/YYYY HH:MM:SS, locale-independent
const addedTimeFormat = "01/02/2006 15:04:05"

// DefaultOwnerID is the placeholder stamped into documents when no
// owner is configured. A fixed value keeps repeated runs byte-identical
// apart from the Added timestamp; the server rewrites it on import.
const DefaultOwnerID = "f9dc2435d1eb43fcb7be02c060e59a52"

type playlistItemXML struct {
	Path string `xml:"Path"`
}

type playlistItemsXML struct {
	PlaylistItem []playlistItemXML `xml:"PlaylistItem"`
}

type genresXML struct {
	Genre []string `xml:"Genre"`
}

// playlistXML is the server-importable playlist document. Element order
// is fixed and meaningful to the importer.
type playlistXML struct {
	XMLName           xml.Name         `xml:"Item"`
	Added             string           `xml:"Added"`
	LockData          string           `xml:"LockData"`
	LocalTitle        string           `xml:"LocalTitle"`
	Genres            genresXML        `xml:"Genres"`
	OwnerUserID       string           `xml:"OwnerUserId"`
	PlaylistItems     playlistItemsXML `xml:"PlaylistItems"`
	PlaylistMediaType string           `xml:"PlaylistMediaType"`
}

// Writer emits one playlist document per draft
type Writer struct {
	// OutDir is the playlist directory root; one subdirectory per
	// category is created beneath it
	OutDir string

	// OwnerUserID is stamped into every document; empty falls back
	// to DefaultOwnerID
	OwnerUserID string

	// Now is the clock for the Added field; defaults to time.Now.
	// Everything else in the output is a pure function of the drafts.
	Now func() time.Time
}

// WriteAll writes every draft with at least one file and returns the
// number of documents written. Drafts are processed in category-name
// order for stable output and logs.
func (w *Writer) WriteAll(drafts map[string]*Draft) (int, error) {
	names := make([]string, 0, len(drafts))
	for name := range drafts {
		names = append(names, name)
	}
	sort.Strings(names)

	written := 0
	for _, name := range names {
		draft := drafts[name]
		if len(draft.Files) == 0 {
			util.DebugLog("Skipping empty playlist: %s", name)
			continue
		}

		path, err := w.write(draft)
		if err != nil {
			return written, err
		}
		util.SuccessLog("Written %s with %d files", path, len(draft.Files))
		written++
	}

	return written, nil
}

// write emits a single draft to <OutDir>/<category>/playlist.xml, with
// path separators in the category name flattened to underscores
func (w *Writer) write(draft *Draft) (string, error) {
	dir := filepath.Join(w.OutDir, strings.ReplaceAll(draft.Category, "/", "_"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create playlist directory: %w", err)
	}

	now := w.Now
	if now == nil {
		now = time.Now
	}

	owner := w.OwnerUserID
	if owner == "" {
		owner = DefaultOwnerID
	}

	genres := make([]string, len(draft.Genres))
	copy(genres, draft.Genres)
	sort.Strings(genres)

	doc := playlistXML{
		Added:             now().Format(addedTimeFormat),
		LockData:          "false",
		LocalTitle:        draft.Category,
		Genres:            genresXML{Genre: genres},
		OwnerUserID:       owner,
		PlaylistMediaType: "Audio",
	}
	for _, file := range draft.Files {
		doc.PlaylistItems.PlaylistItem = append(doc.PlaylistItems.PlaylistItem, playlistItemXML{Path: file})
	}

	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return "", fmt.Errorf("failed to marshal playlist %s: %w", draft.Category, err)
	}

	path := filepath.Join(dir, "playlist.xml")
	out := append([]byte(xmlHeader), body...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write playlist %s: %w", path, err)
	}

	return path, nil
}
