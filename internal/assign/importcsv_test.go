package assign

import (
	"strings"
	"testing"
)

func TestImportCSV(t *testing.T) {
	st := newTestStore(t)
	rock, _ := st.CreateCategory("Rock")
	jazz, _ := st.CreateCategory("Jazz")

	csvData := strings.Join([]string{
		"/music/A,0",
		"/music/B,1",
		"/music/C,99", // unknown category: skipped, not fatal
		"not-enough-columns",
		"/music/D,notanumber",
		"/music/E,0", // later valid rows still import
	}, "\n")

	result, err := ImportCSV(st, strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if result.Imported != 3 {
		t.Errorf("expected 3 imported rows, got %d", result.Imported)
	}
	if result.Skipped != 3 {
		t.Errorf("expected 3 skipped rows, got %d", result.Skipped)
	}

	a, _ := st.GetFolder("/music/A")
	if a == nil || a.CategoryID.Int64 != rock.ID {
		t.Errorf("expected /music/A in Rock, got %+v", a)
	}
	b, _ := st.GetFolder("/music/B")
	if b == nil || b.CategoryID.Int64 != jazz.ID {
		t.Errorf("expected /music/B in Jazz, got %+v", b)
	}
	if c, _ := st.GetFolder("/music/C"); c != nil {
		t.Error("expected unknown-category row not to be inserted")
	}
	e, _ := st.GetFolder("/music/E")
	if e == nil {
		t.Error("expected row after bad rows to import")
	}
}

func TestImportCSVWithUserTag(t *testing.T) {
	st := newTestStore(t)
	st.CreateCategory("Rock")

	user := "alice"
	result, err := ImportCSV(st, strings.NewReader("/music/A,0\n"), &user)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("expected 1 imported row, got %d", result.Imported)
	}

	f, _ := st.GetFolder("/music/A")
	if f == nil || !f.UserName.Valid || f.UserName.String != "alice" {
		t.Errorf("expected user tag on imported row, got %+v", f)
	}
}

func TestImportCSVOverwritesExisting(t *testing.T) {
	st := newTestStore(t)
	rock, _ := st.CreateCategory("Rock")
	jazz, _ := st.CreateCategory("Jazz")

	st.UpsertFolder("/music/A", rock.ID, nil)

	if _, err := ImportCSV(st, strings.NewReader("/music/A,1\n"), nil); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	f, _ := st.GetFolder("/music/A")
	if !f.CategoryID.Valid || f.CategoryID.Int64 != jazz.ID {
		t.Errorf("expected import to overwrite assignment, got %+v", f.CategoryID)
	}
}
