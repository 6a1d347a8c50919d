package scan

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestFolderScanFindsDirectContainers(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "AlbumA", "01.mp3"))
	touch(t, filepath.Join(root, "AlbumA", "02.flac"))
	touch(t, filepath.Join(root, "Artist", "AlbumB", "track.ogg"))
	touch(t, filepath.Join(root, "Artist", "cover.jpg"))

	s := New(nil)
	folders, err := s.FolderScan(root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	expected := []string{
		filepath.Join(root, "AlbumA"),
		filepath.Join(root, "Artist", "AlbumB"),
	}
	if !reflect.DeepEqual(folders, expected) {
		t.Errorf("expected %v, got %v", expected, folders)
	}
}

func TestFolderScanExcludesIndirectContainers(t *testing.T) {
	root := t.TempDir()

	// Audio only in the nested directory: the parent must not appear
	touch(t, filepath.Join(root, "Artist", "Album", "01.mp3"))
	touch(t, filepath.Join(root, "Artist", "notes.txt"))

	s := New(nil)
	folders, err := s.FolderScan(root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	for _, f := range folders {
		if f == filepath.Join(root, "Artist") {
			t.Error("parent directory without direct audio files must not be returned")
		}
	}
	if len(folders) != 1 {
		t.Errorf("expected exactly 1 folder, got %v", folders)
	}
}

func TestFolderScanCaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "Loud", "SONG.MP3"))

	s := New(nil)
	folders, err := s.FolderScan(root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(folders) != 1 {
		t.Errorf("expected uppercase extension to match, got %v", folders)
	}
}

func TestFolderScanDoesNotFollowSymlinkedDirs(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	touch(t, filepath.Join(outside, "hidden.mp3"))
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	touch(t, filepath.Join(root, "Album", "a.mp3"))

	s := New(nil)
	folders, err := s.FolderScan(root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if len(folders) != 1 || folders[0] != filepath.Join(root, "Album") {
		t.Errorf("expected only the real album folder, got %v", folders)
	}
}

func TestFolderScanSortsResults(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "zeta", "z.mp3"))
	touch(t, filepath.Join(root, "alpha", "a.mp3"))
	touch(t, filepath.Join(root, "mid", "m.mp3"))

	s := New(nil)
	folders, err := s.FolderScan(root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	expected := []string{
		filepath.Join(root, "alpha"),
		filepath.Join(root, "mid"),
		filepath.Join(root, "zeta"),
	}
	if !reflect.DeepEqual(folders, expected) {
		t.Errorf("expected sorted %v, got %v", expected, folders)
	}
}

func TestAudioFilesSortedAndDirect(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "b.mp3"))
	touch(t, filepath.Join(root, "a.mp3"))
	touch(t, filepath.Join(root, "cover.png"))
	touch(t, filepath.Join(root, "sub", "nested.mp3"))

	s := New(nil)
	files, err := s.AudioFiles(root)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}

	expected := []string{"a.mp3", "b.mp3"}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("expected %v, got %v", expected, files)
	}
}

func TestAdditionalExtensions(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
		file  string
		want  bool
	}{
		{name: "default excludes placeholder", file: "x.dsf", want: false},
		{name: "extra with dot", extra: []string{".dsf"}, file: "x.dsf", want: true},
		{name: "extra without dot", extra: []string{"dsf"}, file: "x.dsf", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&Config{AdditionalExts: tt.extra})
			if got := s.IsAudioFile(tt.file); got != tt.want {
				t.Errorf("IsAudioFile(%s) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}
