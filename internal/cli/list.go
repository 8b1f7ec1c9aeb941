package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/solver"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the solvers",
		Long: `List every solver with its menu number, input format and an example.

Examples:
  alphamath list
  alphamath list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	entries := dispatch.NewDefault(solver.DefaultOptions()).Registry().Entries()

	if opts.Format == "json" {
		return newFormatter(cmd, opts).Success(entries)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSOLVER\tINPUT\tEXAMPLE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Key, e.Name, e.Usage, e.Sample)
	}
	return tw.Flush()
}
