package main

import "github.com/spf13/cobra"

func queryCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the export archive",
	}
	cmd.AddCommand(queryRunsCmd(flags))
	cmd.AddCommand(querySQLCmd(flags))
	return cmd
}
