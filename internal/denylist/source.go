package denylist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CommentMarker starts a line that is ignored in list sources.
const CommentMarker = "#"

// Source provides the raw entries of one list.
type Source interface {
	// Lines returns the entries in source order, without blank or comment lines.
	Lines() ([]string, error)
	// String describes the source location for error messages.
	String() string
}

// Sources binds categories to their backing sources.
type Sources map[Category]Source

// ParseLines reads one entry per line. Lines are trimmed; blank lines and
// lines starting with CommentMarker are skipped.
func ParseLines(r io.Reader) ([]string, error) {
	entries := make([]string, 0, 64)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if entry, ok := cleanEntry(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}

	return entries, nil
}

// FileSource reads a list from a plain text file.
type FileSource struct {
	Path string
	// Optional turns a missing file into an empty list instead of an error.
	Optional bool
}

// Lines reads and parses the file.
func (s FileSource) Lines() ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if s.Optional && errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := ParseLines(f)
	if err != nil {
		return nil, fmt.Errorf("parse list file: %w", err)
	}

	return entries, nil
}

func (s FileSource) String() string {
	return s.Path
}

// DirSources binds every category to "<dir>/<category>.txt".
func DirSources(dir string) Sources {
	out := make(Sources, len(categories))
	for _, c := range AllCategories() {
		out[c] = FileSource{Path: filepath.Join(dir, c.FileName())}
	}
	return out
}

// cleanEntry trims a raw line and reports whether it is an entry.
func cleanEntry(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, CommentMarker) {
		return "", false
	}
	return line, true
}
