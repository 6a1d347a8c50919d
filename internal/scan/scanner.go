package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/franz/playlist-curator/internal/util"
)

// AudioExtensions are the default playlist-eligible audio file extensions
var AudioExtensions = []string{
	".mp3",
	".ogg",
	".flac",
	".m4a",
	".wma",
	".ape",
}

// Scanner discovers folders of audio files in a directory tree
type Scanner struct {
	extensions map[string]bool
}

// Config holds scanner configuration
type Config struct {
	// AdditionalExts extends the default allow-list, e.g. a non-playable
	// placeholder extension some libraries carry
	AdditionalExts []string
}

// New creates a new Scanner
func New(cfg *Config) *Scanner {
	if cfg == nil {
		cfg = &Config{}
	}

	// Build extension map (case-insensitive)
	extMap := make(map[string]bool)
	for _, ext := range AudioExtensions {
		extMap[strings.ToLower(ext)] = true
	}
	for _, ext := range cfg.AdditionalExts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	return &Scanner{extensions: extMap}
}

// FolderScan walks the root and returns every directory that directly
// contains at least one audio file, sorted lexicographically by path.
// A directory whose audio files all live in subdirectories is not
// included. Symlinked directories are not descended into (WalkDir does
// not follow them), and unreadable directories are skipped with a
// warning rather than aborting the walk.
func (s *Scanner) FolderScan(root string) ([]string, error) {
	seen := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.WarnLog("Skipping unreadable path %s: %v", path, err)
			return nil // Continue walking
		}

		if d.IsDir() {
			return nil
		}

		if s.IsAudioFile(path) {
			seen[filepath.Dir(path)] = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	folders := make([]string, 0, len(seen))
	for dir := range seen {
		folders = append(folders, dir)
	}
	sort.Strings(folders)

	return folders, nil
}

// AudioFiles lists the audio files directly inside one folder, sorted by
// filename. Subdirectories are not entered.
func (s *Scanner) AudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if s.IsAudioFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// IsAudioFile checks if a path has an allow-listed audio extension
func (s *Scanner) IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return s.extensions[ext]
}

// Extensions returns the active allow-list, sorted
func (s *Scanner) Extensions() []string {
	exts := make([]string, 0, len(s.extensions))
	for ext := range s.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
