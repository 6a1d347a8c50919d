package assign

import (
	"fmt"
	"os"

	"github.com/franz/playlist-curator/internal/scan"
	"github.com/franz/playlist-curator/internal/store"
	"github.com/franz/playlist-curator/internal/util"
)

// Chooser is the single human-interaction primitive the workflows need:
// show a titled list of options and learn which one was picked. cursor is
// the pre-selected option index. ok is false when the human cancelled
// without choosing.
type Chooser interface {
	Choose(title string, options []string, cursor int) (index int, ok bool)
}

// Workflow walks music folders and records category choices. Every
// committed choice is persisted immediately, so an interrupted walk
// loses at most the one in-flight answer.
type Workflow struct {
	Store   *store.Store
	Scanner *scan.Scanner
	Chooser Chooser

	// UserTag, when non-nil, stamps new assignments with an owning user
	UserTag *string

	// Preview is how many of a folder's files to show as context
	Preview int
}

// Result summarizes one assignment walk
type Result struct {
	Visited  int
	Assigned int
	Skipped  int
	Aborted  bool
}

const defaultPreview = 5

// AssignNew walks the sorted folder list and prompts only for folders
// that have no resolved category yet
func (w *Workflow) AssignNew(root string) (*Result, error) {
	folders, categories, assigned, err := w.load(root)
	if err != nil {
		return nil, err
	}

	options := categoryOptions(categories)
	skipIdx := len(categories)
	options = append(options, "Skip")

	result := &Result{}
	for _, folder := range folders {
		if current, ok := assigned[folder]; ok {
			util.DebugLog("Already categorized: %s -> %s", folder, current.CategoryName)
			continue
		}
		result.Visited++

		w.previewFolder(folder)

		idx, ok := w.Chooser.Choose(fmt.Sprintf("Select a category for %s:", folder), options, 0)
		if !ok {
			result.Aborted = true
			return result, nil
		}
		if idx == skipIdx {
			result.Skipped++
			continue
		}

		cat := categories[idx]
		if err := w.Store.UpsertFolder(folder, cat.ID, w.UserTag); err != nil {
			return result, err
		}
		util.InfoLog("Assigned %s -> %s", folder, cat.Name)
		result.Assigned++
	}

	return result, nil
}

// Reassign revisits every folder, pre-selecting its current category.
// "Back" re-enters the previously visited folder via an explicit stack;
// existing owning-user tags are always preserved.
func (w *Workflow) Reassign(root string) (*Result, error) {
	folders, categories, assigned, err := w.load(root)
	if err != nil {
		return nil, err
	}

	options := categoryOptions(categories)
	skipIdx := len(categories)
	backIdx := len(categories) + 1
	options = append(options, "Skip", "Back")

	result := &Result{}
	var visited []int
	seen := make(map[int]bool)

	for i := 0; i < len(folders); {
		folder := folders[i]
		// Count distinct folders; back-navigation re-entries don't add
		if !seen[i] {
			seen[i] = true
			result.Visited++
		}

		cursor := 0
		if current, ok := assigned[folder]; ok {
			for ci, cat := range categories {
				if cat.ID == current.CategoryID {
					cursor = ci
					break
				}
			}
		}

		w.previewFolder(folder)

		idx, ok := w.Chooser.Choose(fmt.Sprintf("Select a category for %s:", folder), options, cursor)
		if !ok {
			result.Aborted = true
			return result, nil
		}

		switch {
		case idx == backIdx:
			if len(visited) > 0 {
				i = visited[len(visited)-1]
				visited = visited[:len(visited)-1]
			}
			// Nothing to go back to at the first folder: re-enter it
		case idx == skipIdx:
			result.Skipped++
			visited = append(visited, i)
			i++
		default:
			cat := categories[idx]
			if err := w.Store.UpsertFolder(folder, cat.ID, nil); err != nil {
				return result, err
			}
			assigned[folder] = &store.FolderCategory{Path: folder, CategoryID: cat.ID, CategoryName: cat.Name}
			util.InfoLog("Assigned %s -> %s", folder, cat.Name)
			result.Assigned++
			visited = append(visited, i)
			i++
		}
	}

	return result, nil
}

// load gathers the sorted folder list, the category list, and the
// current assignments
func (w *Workflow) load(root string) ([]string, []*store.Category, map[string]*store.FolderCategory, error) {
	categories, err := w.Store.ListCategories()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(categories) == 0 {
		return nil, nil, nil, fmt.Errorf("no categories exist yet; create one first: %w", util.ErrInvalidInput)
	}

	folders, err := w.Scanner.FolderScan(root)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if len(folders) == 0 {
		return nil, nil, nil, fmt.Errorf("no music folders found under %s: %w", root, util.ErrNotFound)
	}

	withCats, err := w.Store.ListFoldersWithCategories()
	if err != nil {
		return nil, nil, nil, err
	}
	assigned := make(map[string]*store.FolderCategory, len(withCats))
	for _, fc := range withCats {
		assigned[fc.Path] = fc
	}

	return folders, categories, assigned, nil
}

// previewFolder logs a handful of the folder's files as context for the
// category decision
func (w *Workflow) previewFolder(folder string) {
	limit := w.Preview
	if limit <= 0 {
		limit = defaultPreview
	}

	files, err := w.Scanner.AudioFiles(folder)
	if err != nil {
		util.WarnLog("Cannot list %s: %v", folder, err)
		return
	}

	util.InfoLog("Folder %s contains %d audio files:", folder, len(files))
	for i, f := range files {
		if i >= limit {
			util.InfoLog("  ... and %d more files", len(files)-limit)
			break
		}
		util.InfoLog("  %d. %s", i+1, f)
	}
}

func categoryOptions(categories []*store.Category) []string {
	options := make([]string, 0, len(categories)+2)
	for _, c := range categories {
		options = append(options, fmt.Sprintf("ID%d %s", c.ID, c.Name))
	}
	return options
}

// PruneDecision is one answer in the prune walk
type PruneDecision int

const (
	PruneRemove PruneDecision = iota
	PruneKeep
	PruneSkip
	PruneCancel
)

// PruneResult summarizes a prune walk
type PruneResult struct {
	Checked int
	Missing int
	Removed int
	Aborted bool
}

// Prune walks all stored folder paths and, for each one missing on disk,
// asks whether to remove the stale assignment. Every removal commits
// immediately: cancelling stops further prompts but never rolls back
// decisions already taken.
func Prune(st *store.Store, chooser Chooser) (*PruneResult, error) {
	folders, err := st.ListAllFolders()
	if err != nil {
		return nil, err
	}

	options := []string{"Remove", "Keep", "Skip", "Cancel"}
	result := &PruneResult{}

	for _, f := range folders {
		result.Checked++

		if _, err := os.Stat(f.Path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			util.WarnLog("Cannot check %s: %v", f.Path, err)
			continue
		}

		result.Missing++

		idx, ok := chooser.Choose(fmt.Sprintf("Path no longer exists: %s - remove this entry?", f.Path), options, 0)
		if !ok {
			idx = int(PruneCancel)
		}

		switch PruneDecision(idx) {
		case PruneRemove:
			if err := st.DeleteFolder(f.Path); err != nil {
				return result, err
			}
			util.InfoLog("Removed stale entry: %s", f.Path)
			result.Removed++
		case PruneKeep:
			util.InfoLog("Keeping stale entry: %s", f.Path)
		case PruneSkip:
			util.DebugLog("Skipping decision for: %s", f.Path)
		case PruneCancel:
			result.Aborted = true
			return result, nil
		}
	}

	return result, nil
}
