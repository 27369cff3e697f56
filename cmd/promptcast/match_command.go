package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"promptcast/internal/apiclient"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match <title>",
		Short: "Resolve an observed title and switch the connected displays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return ctx.withClient(func(client *apiclient.Client) error {
				resp, err := client.Match(cmd.Context(), title)
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if !resp.Matched {
					fmt.Fprintf(stdout, "No match for %q; displays were alerted and the title was recorded\n", title)
					return nil
				}
				fmt.Fprintf(stdout, "Matched %q to bag %d (%s %s, score %d); displays switched\n",
					title, resp.Bag.ID, resp.Bag.Brand, resp.Bag.Model, resp.Score)
				return nil
			})
		},
	}
}

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar <title>",
		Short: "Rank catalog entries against a title without switching displays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return ctx.withClient(func(client *apiclient.Client) error {
				resp, err := client.Similar(cmd.Context(), title, limit)
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Candidates) == 0 {
					fmt.Fprintf(stdout, "No candidates for %q\n", title)
					return nil
				}
				rows := make([][]string, 0, len(resp.Candidates))
				for _, c := range resp.Candidates {
					rows = append(rows, []string{
						strconv.FormatInt(c.Bag.ID, 10),
						c.Bag.Brand,
						c.Bag.Model,
						c.Bag.Color,
						strconv.Itoa(c.Score),
						c.Strength,
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"ID", "Brand", "Model", "Color", "Score", "Strength"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum candidates to show (default from daemon config)")
	return cmd
}
