package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leeter/internal/report"
)

func reportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print event counts, the mission board, the market ledger and the brief timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, flags)
		},
	}
}

func runReport(cmd *cobra.Command, flags *globalFlags) error {
	s, err := flags.session(cmd)
	if err != nil {
		return err
	}
	loaded, err := s.load()
	if err != nil {
		return err
	}
	records := loaded.Records

	counts := report.EventCounts(records)
	board, err := report.MissionBoard(records, s.engine())
	if err != nil {
		return err
	}
	ledger, err := report.MarketLedger(records)
	if err != nil {
		return fmt.Errorf("building market ledger: %w", err)
	}
	brief := report.BriefTimeline(records, s.cfg.Brief.Blacklist, s.cfg.Brief.Dedupe)

	r := report.NewRenderer(cmd.OutOrStdout())
	r.Heading("Event counts")
	r.Counts(counts)
	fmt.Fprintln(cmd.OutOrStdout())
	r.Heading("Missions")
	r.Board(board)
	fmt.Fprintln(cmd.OutOrStdout())
	r.Heading("Market")
	r.Ledger(ledger)
	fmt.Fprintln(cmd.OutOrStdout())
	r.Heading("Brief")
	r.Brief(brief)
	return nil
}
