package assign

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/franz/playlist-curator/internal/scan"
	"github.com/franz/playlist-curator/internal/store"
)

// scriptedChooser replays canned answers and records what it was asked
type scriptedChooser struct {
	answers []scriptedAnswer
	cursors []int
	titles  []string
}

type scriptedAnswer struct {
	index int
	ok    bool
}

func (c *scriptedChooser) Choose(title string, options []string, cursor int) (int, bool) {
	c.titles = append(c.titles, title)
	c.cursors = append(c.cursors, cursor)
	if len(c.answers) == 0 {
		return 0, false
	}
	a := c.answers[0]
	c.answers = c.answers[1:]
	return a.index, a.ok
}

func pick(index int) scriptedAnswer { return scriptedAnswer{index: index, ok: true} }
func cancel() scriptedAnswer        { return scriptedAnswer{ok: false} }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// musicRoot builds a root with the given album folders, one mp3 each
func musicRoot(t *testing.T, albums ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, album := range albums {
		dir := filepath.Join(root, album)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create album dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "track.mp3"), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write track: %v", err)
		}
	}
	return root
}

func TestAssignNewSkipsCategorizedFolders(t *testing.T) {
	st := newTestStore(t)
	root := musicRoot(t, "AlbumA", "AlbumB")

	rock, _ := st.CreateCategory("Rock")
	if err := st.UpsertFolder(filepath.Join(root, "AlbumA"), rock.ID, nil); err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	chooser := &scriptedChooser{answers: []scriptedAnswer{pick(0)}}
	w := &Workflow{Store: st, Scanner: scan.New(nil), Chooser: chooser}

	result, err := w.AssignNew(root)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// Only AlbumB should have been presented
	if len(chooser.titles) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(chooser.titles))
	}
	if result.Assigned != 1 || result.Aborted {
		t.Errorf("unexpected result: %+v", result)
	}

	f, _ := st.GetFolder(filepath.Join(root, "AlbumB"))
	if f == nil || !f.CategoryID.Valid || f.CategoryID.Int64 != rock.ID {
		t.Errorf("expected AlbumB assigned to Rock, got %+v", f)
	}
}

func TestAssignNewSkipAndCancel(t *testing.T) {
	st := newTestStore(t)
	root := musicRoot(t, "A", "B", "C")
	st.CreateCategory("Rock")

	// Skip A, then cancel at B: C must never be prompted
	chooser := &scriptedChooser{answers: []scriptedAnswer{pick(1), cancel()}}
	w := &Workflow{Store: st, Scanner: scan.New(nil), Chooser: chooser}

	result, err := w.AssignNew(root)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if !result.Aborted {
		t.Error("expected walk to abort on cancel")
	}
	if result.Skipped != 1 || result.Assigned != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(chooser.titles) != 2 {
		t.Errorf("expected 2 prompts before abort, got %d", len(chooser.titles))
	}

	all, _ := st.ListAllFolders()
	if len(all) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(all))
	}
}

func TestAssignNewStampsUserTag(t *testing.T) {
	st := newTestStore(t)
	root := musicRoot(t, "A")
	st.CreateCategory("Rock")

	user := "alice"
	chooser := &scriptedChooser{answers: []scriptedAnswer{pick(0)}}
	w := &Workflow{Store: st, Scanner: scan.New(nil), Chooser: chooser, UserTag: &user}

	if _, err := w.AssignNew(root); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	f, _ := st.GetFolder(filepath.Join(root, "A"))
	if f == nil || !f.UserName.Valid || f.UserName.String != "alice" {
		t.Errorf("expected user tag 'alice', got %+v", f)
	}
}

func TestAssignNewRequiresCategories(t *testing.T) {
	st := newTestStore(t)
	root := musicRoot(t, "A")

	w := &Workflow{Store: st, Scanner: scan.New(nil), Chooser: &scriptedChooser{}}
	if _, err := w.AssignNew(root); err == nil {
		t.Error("expected error when no categories exist")
	}
}

func TestReassignPreselectsCurrentCategory(t *testing.T) {
	st := newTestStore(t)
	root := musicRoot(t, "A", "B")

	jazz, _ := st.CreateCategory("Jazz") // id 0, listed first
	rock, _ := st.CreateCategory("Rock") // id 1, listed second
	st.UpsertFolder(filepath.Join(root, "A"), rock.ID, nil)

	// Reassign A to Jazz, skip B (skip option is index 2 of 4)
	chooser := &scriptedChooser{answers: []scriptedAnswer{pick(0), pick(2)}}
	w := &Workflow{Store: st, Scanner: scan.New(nil), Chooser: chooser}

	result, err := w.Reassign(root)
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	// First prompt (A) must pre-select Rock at index 1, second (B) index 0
	if len(chooser.cursors) != 2 || chooser.cursors[0] != 1 || chooser.cursors[1] != 0 {
		t.Errorf("unexpected cursor positions: %v", chooser.cursors)
	}
	if result.Assigned != 1 || result.Skipped != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	f, _ := st.GetFolder(filepath.Join(root, "A"))
	if !f.CategoryID.Valid || f.CategoryID.Int64 != jazz.ID {
		t.Errorf("expected A reassigned to Jazz, got %+v", f.CategoryID)
	}
}

func TestReassignBackNavigation(t *testing.T) {
	st := newTestStore(t)
	root := musicRoot(t, "A", "B")

	rock, _ := st.CreateCategory("Rock")
	// Options: [ID0 Rock, Skip, Back] -> back is index 2

	// Assign A, reach B, go back, reassign A, then cancel
	chooser := &scriptedChooser{answers: []scriptedAnswer{pick(0), pick(2), pick(0), cancel()}}
	w := &Workflow{Store: st, Scanner: scan.New(nil), Chooser: chooser}

	result, err := w.Reassign(root)
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	if !result.Aborted {
		t.Error("expected abort at the end of the script")
	}
	if result.Assigned != 2 {
		t.Errorf("expected 2 assignments (A twice), got %d", result.Assigned)
	}
	// Re-entering A via back must not inflate the distinct-folder count
	if result.Visited != 2 {
		t.Errorf("expected 2 distinct folders visited, got %d", result.Visited)
	}

	// Going back re-entered A with its fresh assignment pre-selected
	if len(chooser.cursors) != 4 || chooser.cursors[2] != 0 {
		t.Errorf("unexpected cursor positions: %v", chooser.cursors)
	}

	f, _ := st.GetFolder(filepath.Join(root, "A"))
	if f == nil || !f.CategoryID.Valid || f.CategoryID.Int64 != rock.ID {
		t.Errorf("expected A assigned to Rock, got %+v", f)
	}
}

func TestReassignBackAtFirstFolderStays(t *testing.T) {
	st := newTestStore(t)
	root := musicRoot(t, "A")
	st.CreateCategory("Rock")

	// Back with nothing to return to re-enters the same folder
	chooser := &scriptedChooser{answers: []scriptedAnswer{pick(2), pick(0)}}
	w := &Workflow{Store: st, Scanner: scan.New(nil), Chooser: chooser}

	result, err := w.Reassign(root)
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if result.Assigned != 1 {
		t.Errorf("expected the second answer to assign A, got %+v", result)
	}
	if result.Visited != 1 {
		t.Errorf("expected 1 distinct folder visited, got %d", result.Visited)
	}
}

func TestPruneDecisions(t *testing.T) {
	st := newTestStore(t)
	rock, _ := st.CreateCategory("Rock")

	existing := musicRoot(t, "Here")
	herePath := filepath.Join(existing, "Here")

	st.UpsertFolder(herePath, rock.ID, nil)
	st.UpsertFolder("/gone/one", rock.ID, nil)
	st.UpsertFolder("/gone/two", rock.ID, nil)
	st.UpsertFolder("/gone/three", rock.ID, nil)

	// Remove /gone/one, keep /gone/three, cancel at /gone/two?
	// Folders walk in path order: /gone/one, /gone/three, /gone/two, <existing>
	chooser := &scriptedChooser{answers: []scriptedAnswer{
		pick(int(PruneRemove)),
		pick(int(PruneKeep)),
		pick(int(PruneCancel)),
	}}

	result, err := Prune(st, chooser)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	if !result.Aborted {
		t.Error("expected prune to abort on cancel")
	}
	if result.Removed != 1 {
		t.Errorf("expected 1 removal, got %d", result.Removed)
	}

	// The removal before the cancel stays committed
	if f, _ := st.GetFolder("/gone/one"); f != nil {
		t.Error("expected /gone/one removed")
	}
	if f, _ := st.GetFolder("/gone/three"); f == nil {
		t.Error("expected kept entry to survive")
	}
	if f, _ := st.GetFolder("/gone/two"); f == nil {
		t.Error("expected undecided entry to survive the abort")
	}
	if f, _ := st.GetFolder(herePath); f == nil {
		t.Error("expected existing path to be untouched")
	}
}

func TestPruneIgnoresExistingPaths(t *testing.T) {
	st := newTestStore(t)
	rock, _ := st.CreateCategory("Rock")

	existing := musicRoot(t, "Here")
	st.UpsertFolder(filepath.Join(existing, "Here"), rock.ID, nil)

	chooser := &scriptedChooser{}
	result, err := Prune(st, chooser)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	if len(chooser.titles) != 0 {
		t.Error("expected no prompts for existing paths")
	}
	if result.Missing != 0 || result.Checked != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}
