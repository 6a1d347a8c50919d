package playlist

import (
	"os"
	"path/filepath"

	"github.com/franz/playlist-curator/internal/scan"
	"github.com/franz/playlist-curator/internal/store"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/schollz/progressbar/v3"
)

// GenreSource yields the genre tags of one file. Satisfied by
// *probe.Prober; a probe failure and "no genre" are both nil.
type GenreSource interface {
	Genres(path string) []string
}

// Draft is the in-memory aggregation of one category's playlist,
// rebuilt fresh on every run and never persisted itself
type Draft struct {
	Category string
	// Files in folder-then-filename order across all of the
	// category's folders
	Files []string
	// Genres deduplicated in first-seen order; sorting happens at
	// emission time
	Genres []string

	genreSeen map[string]bool
}

func (d *Draft) addGenres(genres []string) {
	if d.genreSeen == nil {
		d.genreSeen = make(map[string]bool)
	}
	for _, g := range genres {
		if !d.genreSeen[g] {
			d.genreSeen[g] = true
			d.Genres = append(d.Genres, g)
		}
	}
}

// Builder aggregates per-category file lists and genre sets from the
// persisted folder assignments
type Builder struct {
	Store   *store.Store
	Scanner *scan.Scanner
	Prober  GenreSource

	// ShowProgress renders a progress bar while probing (TTY only)
	ShowProgress bool
}

// Build re-lists every categorized folder's audio files, probes each
// file for genres, and returns one draft per category. Folders are
// processed in sorted path order so repeated runs aggregate
// identically. Folders missing on disk are reported and skipped; they
// are pruned explicitly, never here.
func (b *Builder) Build() (map[string]*Draft, error) {
	folders, err := b.Store.ListFoldersWithCategories()
	if err != nil {
		return nil, err
	}

	// List files up front so the probe loop can report progress
	type folderFiles struct {
		folder *store.FolderCategory
		files  []string
	}
	var work []folderFiles
	total := 0

	for _, fc := range folders {
		files, err := b.Scanner.AudioFiles(fc.Path)
		if err != nil {
			if os.IsNotExist(err) {
				util.WarnLog("Folder no longer exists, skipping: %s (category %s)", fc.Path, fc.CategoryName)
			} else {
				util.WarnLog("Cannot list %s: %v", fc.Path, err)
			}
			continue
		}
		work = append(work, folderFiles{folder: fc, files: files})
		total += len(files)
	}

	var bar *progressbar.ProgressBar
	if b.ShowProgress && total > 0 && util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Probing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	drafts := make(map[string]*Draft)
	for _, ff := range work {
		name := ff.folder.CategoryName
		draft, ok := drafts[name]
		if !ok {
			draft = &Draft{Category: name}
			drafts[name] = draft
		}

		util.DebugLog("Processing folder: %s -> %s", ff.folder.Path, name)

		for _, file := range ff.files {
			path := filepath.Join(ff.folder.Path, file)
			draft.Files = append(draft.Files, path)
			draft.addGenres(b.Prober.Genres(path))
			if bar != nil {
				bar.Add(1)
			}
		}
	}

	if bar != nil {
		bar.Finish()
	}

	util.InfoLog("Built %d playlist drafts from %d folders", len(drafts), len(work))
	return drafts, nil
}

// CountFiles returns the total number of files across drafts
func CountFiles(drafts map[string]*Draft) int {
	total := 0
	for _, d := range drafts {
		total += len(d.Files)
	}
	return total
}
