package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/notallowed/internal/denylist"
	"github.com/ppiankov/notallowed/internal/model"
)

type checkOptions struct {
	categories categoryFlags
	extensions extensionFlags
	all        bool
	jsonOut    bool
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [values...]",
		Short: "Check values against the banned lists",
		Long: `Check reports whether values are banned.

By default a run is "banned" when any value matches any selected list.
With --all, every value must match at least one selected list.
Without a category flag every list is checked.

Exit status is 1 when the verdict is banned.

Example:
  notallowed check --username admin
  notallowed check --email someone@yopmail.com --json
  notallowed check --word "he is an asshole" "hello world"
  notallowed check --all --username --add usernames=guest admin guest`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, opts, args)
		},
	}

	opts.categories.register(cmd.Flags())
	opts.extensions.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.all, "all", false, "require every value to be banned")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print a JSON report")

	return cmd
}

func runCheck(cmd *cobra.Command, a *app, opts *checkOptions, values []string) error {
	r, cfg, cleanup, err := a.registry()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := opts.extensions.apply(r); err != nil {
		return err
	}

	categories := opts.categories.selected()

	report := model.Report{
		CheckedAt:  time.Now().UTC(),
		Mode:       model.ModeAny,
		Categories: model.CategoryNames(categories),
		Values:     make([]model.Verdict, 0, len(values)),
	}

	if opts.all {
		report.Mode = model.ModeAll
		report.Banned, err = r.IsAll(values, categories...)
	} else {
		report.Banned, err = r.IsAny(values, categories...)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	for _, v := range values {
		var matched *denylist.Match
		match, found, err := r.FindAny([]string{v}, categories...)
		if found {
			matched = &match
		}
		report.Values = append(report.Values, model.NewVerdict(v, matched, err))
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut || cfg.Output.JSON {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		writeVerdicts(out, report.Values)
	}

	if report.Banned {
		return ErrBanned
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func writeVerdicts(w io.Writer, verdicts []model.Verdict) {
	for _, v := range verdicts {
		switch {
		case v.Error != "":
			fmt.Fprintf(w, "error   %s: %s\n", v.Value, v.Error)
		case v.Banned:
			fmt.Fprintf(w, "banned  %s (%s: %s)\n", v.Value, v.Category, v.Entry)
		default:
			fmt.Fprintf(w, "ok      %s\n", v.Value)
		}
	}
}
