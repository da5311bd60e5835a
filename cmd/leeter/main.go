package main

import (
	"os"

	"github.com/spf13/cobra"

	"leeter/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:          "leeter",
		Short:        "Reconstruct missions, trades and activity from game journal logs",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath, "Project config file")
	root.PersistentFlags().StringVar(&flags.logsDir, "logs", "", "Journal directory (overrides logs.dir)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	root.AddCommand(reportCmd(flags))
	root.AddCommand(summaryCmd(flags))
	root.AddCommand(missionsCmd(flags))
	root.AddCommand(marketCmd(flags))
	root.AddCommand(briefCmd(flags))
	root.AddCommand(validateCmd(flags))
	root.AddCommand(exportCmd(flags))
	root.AddCommand(queryCmd(flags))
	root.AddCommand(serveCmd(flags))
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	return root
}
