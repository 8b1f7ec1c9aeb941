package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aquaa/alphamath/internal/dispatch"
)

// MenuOptions holds flags for the menu command.
type MenuOptions struct {
	*RootOptions
	Database string
}

// NewMenuCommand creates the interactive menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MenuOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Choose solvers from an interactive menu",
		Long: `Show the numbered solver menu, read a choice and an input, print the
working and repeat until "0" or end of input.

Examples:
  alphamath menu
  alphamath menu --db ./history.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite history database")

	return cmd
}

func runMenu(opts *MenuOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	sess, err := openSession(cmd, opts.RootOptions, opts.Database)
	if err != nil {
		return err
	}
	defer sess.close()

	reg := sess.dispatcher.Registry()
	in := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(w, "\n"+reg.Menu())
		fmt.Fprint(w, "Enter choice: ")
		if !in.Scan() {
			fmt.Fprintln(w)
			break
		}
		choice := strings.TrimSpace(in.Text())

		s, err := reg.Lookup(choice)
		if err != nil {
			// Run turns the exit key and unknown choices into their messages.
			fmt.Fprint(w, sess.dispatcher.Run(ctx, choice, ""))
			if errors.Is(err, dispatch.ErrExit) {
				return nil
			}
			continue
		}

		fmt.Fprintf(w, "Input (%s), e.g. %s: ", s.Usage(), s.Example())
		if !in.Scan() {
			fmt.Fprintln(w)
			break
		}

		res, err := sess.dispatcher.Solve(ctx, s.Name(), strings.TrimSpace(in.Text()))
		if err != nil {
			return err
		}
		fmt.Fprint(w, res.Output)
		if _, err := sess.record(ctx, res); err != nil {
			return err
		}
	}
	return in.Err()
}
