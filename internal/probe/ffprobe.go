package probe

import (
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	"github.com/dhowden/tag"
	"github.com/franz/playlist-curator/internal/util"
	"golang.org/x/text/unicode/norm"
)

// Info represents the output from ffprobe
type Info struct {
	Streams []Stream `json:"streams"`
	Format  *Format  `json:"format"`
}

// Stream represents one container stream
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
}

// Format represents container format metadata
type Format struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Tags       map[string]string `json:"tags"`
}

// Prober extracts metadata from audio files by invoking ffprobe, one
// process per file. When no ffprobe binary is available it falls back to
// reading tags natively.
type Prober struct {
	ffprobePath string
}

// New creates a Prober for the configured ffprobe path. An empty path
// means "find ffprobe on PATH"; if that fails too, the prober runs in
// native-tag fallback mode.
func New(ffprobePath string) *Prober {
	if ffprobePath == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			ffprobePath = found
		} else {
			util.WarnLog("ffprobe not found - falling back to native tag reads")
		}
	}
	return &Prober{ffprobePath: ffprobePath}
}

// HasFFprobe reports whether an ffprobe binary is configured
func (p *Prober) HasFFprobe() bool {
	return p.ffprobePath != ""
}

// Probe runs ffprobe on one file and parses its JSON output. A non-zero
// exit or unparseable output yields an empty Info, never an error:
// callers cannot distinguish "probe failed" from "no metadata", by
// contract.
func (p *Prober) Probe(path string) *Info {
	if p.ffprobePath == "" {
		return &Info{}
	}

	cmd := exec.Command(p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		util.DebugLog("ffprobe failed for %s: %v", path, err)
		return &Info{}
	}

	var info Info
	if err := json.Unmarshal(output, &info); err != nil {
		util.DebugLog("unparseable ffprobe output for %s: %v", path, err)
		return &Info{}
	}

	return &info
}

// Genres extracts the genre tags of one file. The GENRE spelling wins
// over genre; a single value may carry several genres separated by
// semicolons. Returns nil when the file has no genre or probing failed.
func (p *Prober) Genres(path string) []string {
	if p.ffprobePath == "" {
		return nativeGenres(path)
	}

	info := p.Probe(path)
	if info.Format == nil || info.Format.Tags == nil {
		return nil
	}

	value, ok := info.Format.Tags["GENRE"]
	if !ok {
		value, ok = info.Format.Tags["genre"]
	}
	if !ok {
		return nil
	}

	return splitGenres(value)
}

// nativeGenres reads the genre tag without ffprobe
func nativeGenres(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		util.DebugLog("cannot open %s for tag read: %v", path, err)
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		util.DebugLog("no readable tags in %s: %v", path, err)
		return nil
	}

	return splitGenres(m.Genre())
}

// splitGenres splits a semicolon-separated genre value into trimmed,
// NFC-normalized tags
func splitGenres(value string) []string {
	var genres []string
	for _, g := range strings.Split(value, ";") {
		g = strings.TrimSpace(norm.NFC.String(g))
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
