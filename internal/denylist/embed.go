package denylist

import (
	"embed"
	"fmt"
	"path"
)

//go:embed data/*.txt
var bundled embed.FS

// EmbeddedSource reads one of the default lists compiled into the binary.
type EmbeddedSource struct {
	Category Category
}

// Lines parses the bundled list file.
func (s EmbeddedSource) Lines() ([]string, error) {
	f, err := bundled.Open(s.path())
	if err != nil {
		return nil, fmt.Errorf("open bundled list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseLines(f)
}

func (s EmbeddedSource) String() string {
	return "embedded:" + s.path()
}

func (s EmbeddedSource) path() string {
	return path.Join("data", s.Category.FileName())
}

// EmbeddedSources binds every category to its bundled default list.
func EmbeddedSources() Sources {
	out := make(Sources, len(categories))
	for _, c := range AllCategories() {
		out[c] = EmbeddedSource{Category: c}
	}
	return out
}
