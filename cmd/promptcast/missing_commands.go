package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"promptcast/internal/apiclient"
)

func newMissingCommand(ctx *commandContext) *cobra.Command {
	missingCmd := &cobra.Command{
		Use:   "missing",
		Short: "Review products that had no script during a stream",
	}

	var includeResolved bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List missing-product reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *apiclient.Client) error {
				resp, err := client.Missing(cmd.Context(), includeResolved)
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Items) == 0 {
					fmt.Fprintln(stdout, "No missing-product reports")
					return nil
				}
				rows := make([][]string, 0, len(resp.Items))
				for _, item := range resp.Items {
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.Title,
						strconv.FormatInt(item.HitCount, 10),
						item.LastSeen,
						yesNo(item.Resolved),
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"ID", "Title", "Hits", "Last Seen", "Resolved"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&includeResolved, "all", false, "Include resolved reports")

	resolveCmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark a missing-product report handled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid report id %q", args[0])
			}
			return ctx.withClient(func(client *apiclient.Client) error {
				if _, err := client.ResolveMissing(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report %d resolved\n", id)
				return nil
			})
		},
	}

	missingCmd.AddCommand(listCmd)
	missingCmd.AddCommand(resolveCmd)
	return missingCmd
}
