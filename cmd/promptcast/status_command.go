package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"promptcast/internal/apiclient"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon and catalog status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *apiclient.Client) error {
				status, err := client.Status(cmd.Context())
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				rows := [][]string{
					{"Running", yesNo(status.Running)},
					{"PID", strconv.Itoa(status.PID)},
					{"API", status.Bind},
					{"Started", status.StartedAt},
					{"Database", status.DatabasePath},
					{"Lock file", status.LockFilePath},
					{"Displays connected", strconv.Itoa(status.Connections)},
					{"Bags with viewers", strconv.Itoa(status.Topics)},
					{"Bags", strconv.Itoa(status.Catalog.Bags)},
					{"Scripts", strconv.Itoa(status.Catalog.Scripts)},
					{"Active rules", strconv.Itoa(status.Catalog.ActiveRules)},
					{"Open missing reports", strconv.Itoa(status.Catalog.OpenMissing)},
				}
				fmt.Fprintln(stdout, renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			})
		},
	}
}
