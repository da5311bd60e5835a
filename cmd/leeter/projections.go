package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leeter/internal/report"
)

func summaryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count events by kind, least frequent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}
			loaded, err := s.load()
			if err != nil {
				return err
			}
			report.NewRenderer(cmd.OutOrStdout()).Counts(report.EventCounts(loaded.Records))
			return nil
		},
	}
}

func missionsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "missions",
		Short: "Reconstruct accepted missions and their transitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}
			loaded, err := s.load()
			if err != nil {
				return err
			}
			engine := s.engine()
			board, err := report.MissionBoard(loaded.Records, engine)
			if err != nil {
				return err
			}
			report.NewRenderer(cmd.OutOrStdout()).Board(board)
			if skipped := engine.Skipped(); skipped > 0 {
				s.logger.Info("duplicate mission events skipped", "count", skipped)
			}
			return nil
		},
	}
}

func marketCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "List market buys and sells with station and system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}
			loaded, err := s.load()
			if err != nil {
				return err
			}
			ledger, err := report.MarketLedger(loaded.Records)
			if err != nil {
				return fmt.Errorf("building market ledger: %w", err)
			}
			report.NewRenderer(cmd.OutOrStdout()).Ledger(ledger)
			return nil
		},
	}
}

func briefCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Print the condensed activity timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}
			loaded, err := s.load()
			if err != nil {
				return err
			}
			brief := report.BriefTimeline(loaded.Records, s.cfg.Brief.Blacklist, s.cfg.Brief.Dedupe)
			if limit > 0 && len(brief) > limit {
				brief = brief[len(brief)-limit:]
			}
			report.NewRenderer(cmd.OutOrStdout()).Brief(brief)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the most recent entries")
	return cmd
}
