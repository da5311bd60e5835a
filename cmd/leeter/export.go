package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"leeter/internal/export"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Archive the journal, missions and ledger to the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}
}

func runExport(cmd *cobra.Command, flags *globalFlags) error {
	ctx := context.Background()

	s, err := flags.session(cmd)
	if err != nil {
		return err
	}
	loaded, err := s.load()
	if err != nil {
		return err
	}

	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := export.Run(ctx, db, loaded.Records, s.engine(), export.Options{
		Project: s.cfg.Project,
		LogDir:  s.cfg.Logs.Dir,
		Sources: len(loaded.Sources),
		Logger:  s.logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Export complete.")
	fmt.Fprintf(out, "  Run:          %s\n", result.RunID)
	fmt.Fprintf(out, "  Events:       %d\n", result.Events)
	fmt.Fprintf(out, "  Missions:     %d\n", result.Missions)
	fmt.Fprintf(out, "  Transitions:  %d\n", result.Transitions)
	fmt.Fprintf(out, "  Transactions: %d\n", result.Transactions)

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(out, "  - %v\n", item)
		}
		return fmt.Errorf("export finished with %d errors", len(result.Errors))
	}
	return nil
}
