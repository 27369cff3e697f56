package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptcast/internal/pipeline"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Phrase-rule utilities",
	}

	checkCmd := &cobra.Command{
		Use:         "check <find> <replace>",
		Short:       "Validate a phrase rule before adding it",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			violations := pipeline.ValidateRule(args[0], args[1])
			if len(violations) == 0 {
				fmt.Fprintln(stdout, "Rule is valid")
				return nil
			}
			for _, v := range violations {
				fmt.Fprintf(stdout, "- %s\n", v)
			}
			return fmt.Errorf("rule has %d violation(s)", len(violations))
		},
	}

	rulesCmd.AddCommand(checkCmd)
	return rulesCmd
}
