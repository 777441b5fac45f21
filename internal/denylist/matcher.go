package denylist

import (
	"strings"

	ac "github.com/petar-dambovaliev/aho-corasick"
)

// Match describes a banned value and the entry that banned it.
type Match struct {
	Category Category `json:"category"`
	Value    string   `json:"value"`
	// Entry is the list entry as loaded or merged, before folding.
	Entry string `json:"entry"`
}

// compiledList is the folded, query-ready form of one entry list.
type compiledList struct {
	strategy Strategy
	entries  []string
	// exact maps a folded entry to the index of its first occurrence.
	exact map[string]int
	// words finds folded entries inside a folded candidate; nil for an empty list.
	words *ac.AhoCorasick
	// wordIndex maps an automaton pattern index to an entries index.
	wordIndex []int
}

func compile(c Category, entries []string) *compiledList {
	cl := &compiledList{
		strategy: c.Strategy(),
		entries:  entries,
	}

	if cl.strategy != Contains {
		cl.exact = make(map[string]int, len(entries))
		for i, e := range entries {
			folded := foldEntry(e)
			if folded == "" {
				continue
			}
			if _, dup := cl.exact[folded]; !dup {
				cl.exact[folded] = i
			}
		}
		return cl
	}

	patterns := make([]string, 0, len(entries))
	cl.wordIndex = make([]int, 0, len(entries))
	for i, e := range entries {
		folded := foldEntry(e)
		if folded == "" {
			continue
		}
		patterns = append(patterns, folded)
		cl.wordIndex = append(cl.wordIndex, i)
	}

	if len(patterns) > 0 {
		builder := ac.NewAhoCorasickBuilder(ac.Opts{
			MatchKind: ac.LeftMostLongestMatch,
		})
		automaton := builder.Build(patterns)
		cl.words = &automaton
	}

	return cl
}

// find returns the index of the entry matching value, or -1.
func (cl *compiledList) find(value string) int {
	candidate := strings.ToLower(value)
	if candidate == "" {
		return -1
	}

	switch cl.strategy {
	case Contains:
		if cl.words == nil {
			return -1
		}
		matches := cl.words.FindAll(candidate)
		if len(matches) == 0 {
			return -1
		}
		return cl.wordIndex[matches[0].Pattern()]

	case EmailDomain:
		if at := strings.LastIndexByte(candidate, '@'); at >= 0 {
			if i, ok := cl.exact[candidate[at:]]; ok {
				return i
			}
		}
		fallthrough

	default:
		if i, ok := cl.exact[candidate]; ok {
			return i
		}
		return -1
	}
}

// foldEntry normalizes a list entry; merged values may carry surrounding spaces.
func foldEntry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
