package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func queryRunsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List export runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryRuns(cmd, flags, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")
	return cmd
}

func runQueryRuns(cmd *cobra.Command, flags *globalFlags, limit int) error {
	ctx := context.Background()

	s, err := flags.session(cmd)
	if err != nil {
		return err
	}
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found.")
		return nil
	}

	for _, run := range runs {
		status := "unfinished"
		if run.FinishedAt != nil {
			status = fmt.Sprintf("%d events, %d missions, %d transactions", run.Events, run.Missions, run.Transactions)
		}
		fmt.Fprintf(out, "%s  %s  %s [%s]  %s\n", run.ID, run.StartedAt.Local().Format(time.DateTime), run.Project, run.LogDir, status)
	}
	return nil
}
