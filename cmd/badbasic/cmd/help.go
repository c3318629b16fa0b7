package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/help"
)

// newHelpCmd shows usage for a subcommand, or a language help topic.
func newHelpCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command|topic]",
		Short: "Help about commands and the language",
		Long: `Without arguments, print the language quick reference.
With a command name, print that command's usage. Otherwise print the
matching help topic: ` + strings.Join(help.TopicList, ", ") + `.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprint(out, help.QUICKREF)
				return nil
			}

			if sub, _, err := root.Find(args); err == nil && sub != root {
				sub.SetOut(out)
				return sub.Help()
			}

			_, content, err := help.MatchTopic(strings.Join(args, " "))
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s\nAvailable topics: %s\n", err, strings.Join(help.TopicList, ", "))
				return exitWith(exitUsage, err)
			}
			fmt.Fprint(out, content)
			return nil
		},
	}
}
