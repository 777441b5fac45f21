package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/notallowed/internal/model"
	"github.com/ppiankov/notallowed/internal/worker"
)

type batchOptions struct {
	categories  categoryFlags
	extensions  extensionFlags
	concurrency int
	timeout     time.Duration
	jsonOut     bool
	failOnMatch bool
}

func newBatchCmd(a *app) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Check every value of a file in parallel",
		Long: `Batch checks many values concurrently:
- Read values from input file (one per line, "#" comments allowed)
- Check each value against the selected lists with a worker pool
- Print one verdict per value in file order

Example:
  notallowed batch signups.txt --username --email
  notallowed batch comments.txt --word --concurrency 8 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, opts, args[0])
		},
	}

	opts.categories.register(cmd.Flags())
	opts.extensions.register(cmd.Flags())
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "total timeout for batch processing")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print a JSON report")
	cmd.Flags().BoolVar(&opts.failOnMatch, "fail-on-match", false, "exit with status 1 when any value is banned")

	return cmd
}

func runBatch(cmd *cobra.Command, a *app, opts *batchOptions, file string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	r, cfg, cleanup, err := a.registry()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := opts.extensions.apply(r); err != nil {
		return err
	}

	concurrency := opts.concurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency.Workers
	}

	categories := opts.categories.selected()

	if a.verbose {
		fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
		fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
		fmt.Fprintf(os.Stderr, "  Lists:        %v\n", model.CategoryNames(categories))
		fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", opts.timeout)
		fmt.Fprintln(os.Stderr)
	}

	checker := worker.NewBatchChecker(r, concurrency)
	results, err := checker.CheckFile(ctx, file, categories...)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	report := model.Report{
		CheckedAt:  time.Now().UTC(),
		Mode:       model.ModeAny,
		Categories: model.CategoryNames(categories),
		Values:     make([]model.Verdict, 0, len(results)),
	}
	for _, res := range results {
		report.Values = append(report.Values, model.NewVerdict(res.Value, res.Match, res.Error))
	}
	report.Summarize()

	out := cmd.OutOrStdout()
	if opts.jsonOut || cfg.Output.JSON {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		writeVerdicts(out, report.Values)
	}

	if a.verbose {
		banned := 0
		for _, v := range report.Values {
			if v.Banned {
				banned++
			}
		}
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "  Total:     %d values\n", len(report.Values))
		fmt.Fprintf(os.Stderr, "  Banned:    %d\n", banned)
		fmt.Fprintf(os.Stderr, "  Errors:    %d\n", report.Errors)
	}

	if report.Errors > 0 {
		return fmt.Errorf("%d of %d checks failed", report.Errors, len(report.Values))
	}
	if opts.failOnMatch && report.Banned {
		return ErrBanned
	}
	return nil
}
