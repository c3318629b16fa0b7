package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/policy"
)

type policyReport struct {
	Source      string   `json:"source"`
	Recoverable []string `json:"recoverable"`
	Eligible    []string `json:"eligible"`
}

func newPolicyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Show which runtime errors are recoverable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := a.cfgPath
			if source == "" {
				source = "defaults"
			}
			report := policyReport{
				Source:      source,
				Recoverable: a.policy.Recoverable(),
				Eligible:    policy.Eligible,
			}
			b, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
