package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func repCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rep [id,id,...] [command] [separator]",
		Short: "Repeat a command for several work logs",
		Example: `  worklog rep 1,3,7 view "*****"   shows 1, 3 & 7 in a loop
  worklog rep 4,5 rm`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := strings.FieldsFunc(args[0], func(r rune) bool { return r == ',' })
			command := args[1]

			// Forward the root flags given explicitly so every run sees
			// the same worklog space.
			var forwarded []string
			cmd.Root().PersistentFlags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					forwarded = append(forwarded, "--"+f.Name+"="+f.Value.String())
				}
			})

			failed := 0
			for _, id := range ids {
				runArgs := append([]string{command, id}, forwarded...)

				fmt.Fprintf(cmd.ErrOrStderr(), "Executed: worklog %s %s. Potential output:\n", command, id)
				code := 0
				if err := runNested(cmd, runArgs); err != nil {
					code = 1
					failed++
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "... returned with exit code: %d\n", code)

				if len(args) == 3 {
					fmt.Fprintln(cmd.OutOrStdout(), args[2])
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d repeated commands failed", failed, len(ids))
			}
			return nil
		},
	}
}

var errNestedRep = errors.New("rep cannot repeat itself")

// runNested executes args on a fresh command tree sharing cmd's output
func runNested(cmd *cobra.Command, args []string) error {
	if args[0] == "rep" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", errNestedRep)
		return errNestedRep
	}

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(cmd.OutOrStdout())
	root.SetErr(cmd.ErrOrStderr())
	root.SetIn(cmd.InOrStdin())
	return root.Execute()
}
