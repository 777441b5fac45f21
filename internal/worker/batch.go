package worker

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/notallowed/internal/denylist"
)

// Checker decides whether values are banned in any of the given categories
type Checker interface {
	FindAny(values []string, categories ...denylist.Category) (denylist.Match, bool, error)
}

// CheckJob checks one value
type CheckJob struct {
	Index      int
	Value      string
	Categories []denylist.Category
	Checker    Checker
}

// Execute runs the check
func (j *CheckJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &CheckResult{Index: j.Index, Value: j.Value, Error: err}
	}

	match, banned, err := j.Checker.FindAny([]string{j.Value}, j.Categories...)
	if err != nil {
		return &CheckResult{Index: j.Index, Value: j.Value, Error: err}
	}

	result := &CheckResult{Index: j.Index, Value: j.Value, Banned: banned}
	if banned {
		result.Match = &match
	}
	return result
}

// CheckResult is the outcome of one CheckJob
type CheckResult struct {
	Index  int             `json:"-"`
	Value  string          `json:"value"`
	Banned bool            `json:"banned"`
	Match  *denylist.Match `json:"match,omitempty"`
	Error  error           `json:"-"`
}

// GetError returns the error from the check
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchChecker checks many values concurrently
type BatchChecker struct {
	checker     Checker
	concurrency int
}

// NewBatchChecker creates a new batch checker
func NewBatchChecker(checker Checker, concurrency int) *BatchChecker {
	return &BatchChecker{
		checker:     checker,
		concurrency: concurrency,
	}
}

// CheckValues checks values against categories and returns results in input
// order. Values not reached before ctx is done carry ctx's error.
func (b *BatchChecker) CheckValues(ctx context.Context, values []string, categories ...denylist.Category) []*CheckResult {
	checked := make([]*CheckResult, len(values))
	if len(values) == 0 {
		return checked
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	// Feed from a separate goroutine so result draining never stalls submission.
	go func() {
		defer pool.Close()
		for i, v := range values {
			job := &CheckJob{
				Index:      i,
				Value:      v,
				Categories: categories,
				Checker:    b.checker,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	for result := range pool.Results() {
		r := result.(*CheckResult)
		checked[r.Index] = r
	}

	for i := range checked {
		if checked[i] != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		checked[i] = &CheckResult{Index: i, Value: values[i], Error: err}
	}

	return checked
}

// CheckFile reads values from a file and checks them concurrently
func (b *BatchChecker) CheckFile(ctx context.Context, filePath string, categories ...denylist.Category) ([]*CheckResult, error) {
	values, err := ReadValuesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	return b.CheckValues(ctx, values, categories...), nil
}

// ReadValuesFromFile reads values from a file (one per line), skipping blank
// and comment lines and dropping duplicates.
func ReadValuesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	lines, err := denylist.ParseLines(file)
	if err != nil {
		return nil, err
	}

	var values []string
	seen := make(map[string]bool)
	for _, line := range lines {
		key := strings.ToLower(line)
		if !seen[key] {
			seen[key] = true
			values = append(values, line)
		}
	}

	return values, nil
}
