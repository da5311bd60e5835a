package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"leeter/internal/validate"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Audit the journal for orphaned missions, duplicates and unresolved markets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags)
		},
	}
}

func runValidate(cmd *cobra.Command, flags *globalFlags) error {
	s, err := flags.session(cmd)
	if err != nil {
		return err
	}
	loaded, err := s.load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := validate.Run(loaded.Records)
	errorIssues := result.Errors()
	warnIssues := result.Warnings()

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(out, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(out, "Errors (%d):\n", len(errorIssues))
		printIssues(out, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(out, "")
		}
		fmt.Fprintf(out, "Warnings (%d):\n", len(warnIssues))
		printIssues(out, warnIssues)
	}

	if result.HasErrors() {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(out io.Writer, issues []validate.Issue) {
	for _, issue := range issues {
		location := issue.Subject
		if issue.Source != "" {
			location = fmt.Sprintf("%s (%s line %d)", location, issue.Source, issue.Line)
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
