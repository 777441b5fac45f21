package model

import (
	"time"

	"github.com/ppiankov/notallowed/internal/denylist"
)

// Mode is how values are combined in a check
type Mode string

const (
	ModeAny Mode = "any" // Banned when any value matches
	ModeAll Mode = "all" // Banned when every value matches
)

// Report is the outcome of one check or batch run
type Report struct {
	CheckedAt  time.Time `json:"checked_at"`
	Mode       Mode      `json:"mode"`
	Categories []string  `json:"categories"`
	Banned     bool      `json:"banned"` // Overall verdict for the mode
	Values     []Verdict `json:"values"` // Per-value verdicts in input order
	Errors     int       `json:"errors,omitempty"`
}

// Verdict is the result for one value
type Verdict struct {
	Value    string `json:"value"`
	Banned   bool   `json:"banned"`
	Category string `json:"category,omitempty"` // Category that matched
	Entry    string `json:"entry,omitempty"`    // List entry that matched
	Error    string `json:"error,omitempty"`
}

// NewVerdict builds a verdict from a registry lookup
func NewVerdict(value string, match *denylist.Match, err error) Verdict {
	v := Verdict{Value: value}
	if err != nil {
		v.Error = err.Error()
		return v
	}
	if match != nil {
		v.Banned = true
		v.Category = match.Category.String()
		v.Entry = match.Entry
	}
	return v
}

// CategoryNames returns the list names of categories
func CategoryNames(categories []denylist.Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return names
}

// Summarize fills the overall verdict and error count from Values
func (r *Report) Summarize() {
	r.Errors = 0
	banned := 0
	for _, v := range r.Values {
		if v.Error != "" {
			r.Errors++
		}
		if v.Banned {
			banned++
		}
	}

	switch r.Mode {
	case ModeAll:
		r.Banned = banned == len(r.Values)
	default:
		r.Banned = banned > 0
	}
}
