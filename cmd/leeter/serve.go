package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"leeter/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *globalFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := flags.session(cmd)
	if err != nil {
		return err
	}

	var db mcp.Querier
	if s.cfg.Database.DSN != "" {
		client, err := s.openDB(ctx)
		if err != nil {
			return err
		}
		defer client.Close(context.Background())
		db = client
	}

	server := mcp.NewServer(s, db, mcp.Options{
		Policy:         s.cfg.DuplicatePolicy(),
		BriefBlacklist: s.cfg.Brief.Blacklist,
		BriefDedupe:    s.cfg.Brief.Dedupe,
		Logger:         s.logger,
	}, version)
	s.logger.Info("mcp server listening on stdio", "logs", s.cfg.Logs.Dir)
	return server.Run(ctx, &sdk.StdioTransport{})
}
