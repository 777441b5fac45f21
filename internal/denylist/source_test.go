package denylist

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, dir string, c Category, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, c.FileName())
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestParseLines(t *testing.T) {
	input := "bitch\n#comment\n\n   \n  asshole  \r\n# another\nflipping the bird\n"

	entries, err := ParseLines(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"bitch", "asshole", "flipping the bird"}, entries)
}

func TestParseLines_Empty(t *testing.T) {
	entries, err := ParseLines(strings.NewReader("# only comments\n\n"))
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := writeList(t, dir, IP, "# ips", "127.0.0.1", "")

	entries, err := FileSource{Path: path}.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1"}, entries)
	assert.Equal(t, path, FileSource{Path: path}.String())
}

func TestFileSource_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	_, err := FileSource{Path: path}.Lines()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	entries, err := FileSource{Path: path, Optional: true}.Lines()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDirSources(t *testing.T) {
	sources := DirSources("/etc/notallowed")

	require.Len(t, sources, 5)
	assert.Equal(t, FileSource{Path: filepath.Join("/etc/notallowed", "emails.txt")}, sources[Email])
}

func TestEmbeddedSources(t *testing.T) {
	for c, src := range EmbeddedSources() {
		entries, err := src.Lines()
		require.NoError(t, err, c.String())
		assert.NotEmpty(t, entries, c.String())
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e, CommentMarker), "comment loaded in %s: %q", c, e)
		}
	}

	assert.Equal(t, "embedded:data/words.txt", EmbeddedSource{Category: Word}.String())
}
