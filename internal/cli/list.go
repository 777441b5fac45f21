package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/notallowed/internal/denylist"
)

func newListCmd(a *app) *cobra.Command {
	var extensions extensionFlags

	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "Print the entries of one banned list",
		Long: `List prints the loaded entries of a category, one per line, including
entries added with --add and --merge.

Categories: usernames, emails, words, bank_accounts, ips`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := denylist.ParseCategory(args[0])
			if err != nil {
				return err
			}

			r, _, cleanup, err := a.registry()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := extensions.apply(r); err != nil {
				return err
			}

			entries, err := r.Entries(c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintln(out, e)
			}
			return nil
		},
	}

	extensions.register(cmd.Flags())

	return cmd
}
