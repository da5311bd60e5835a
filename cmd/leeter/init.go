package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"leeter/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	var path string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter leeter.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runInit(path, projectName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name (defaults to the directory name)")
	cmd.Flags().StringVar(&path, "path", config.DefaultPath, "Where to write the config")
	return cmd
}

func runInit(path, projectName string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if projectName == "" {
		abs, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("resolving project directory: %w", err)
		}
		projectName = filepath.Base(abs)
	}

	contents, err := config.Starter(projectName)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
