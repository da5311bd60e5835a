package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"leeter/internal/config"
	"leeter/internal/journal"
	"leeter/internal/logging"
	"leeter/internal/mission"
	"leeter/internal/store"
	"leeter/internal/store/postgres"
	"leeter/internal/store/sqlite"
)

type globalFlags struct {
	configPath string
	logsDir    string
	verbose    bool
}

// session is the resolved configuration and logger for one command.
type session struct {
	cfg    *config.ProjectConfig
	logger *slog.Logger
}

func (f *globalFlags) session(cmd *cobra.Command) (*session, error) {
	logger := logging.Init(cmd.ErrOrStderr(), f.verbose)

	cfg, err := config.Load(f.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	if f.logsDir != "" {
		cfg.Logs.Dir = f.logsDir
	}
	return &session{cfg: cfg, logger: logger}, nil
}

func (s *session) load() (*journal.Result, error) {
	loader := journal.NewLoader(s.cfg.Logs.Pattern, s.cfg.Logs.EventBlacklist, s.logger)
	result, err := loader.LoadAll(s.cfg.Logs.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	s.logger.Debug("journal loaded",
		"dir", s.cfg.Logs.Dir,
		"sources", len(result.Sources),
		"records", len(result.Records),
		"blacklisted", result.Blacklisted,
	)
	return result, nil
}

// Records lets the MCP server reload the journal on every call.
func (s *session) Records(ctx context.Context) ([]journal.Record, error) {
	result, err := s.load()
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func (s *session) engine() *mission.Engine {
	return mission.NewEngine(s.cfg.DuplicatePolicy(), s.logger)
}

func (s *session) openDB(ctx context.Context) (store.Store, error) {
	dsn := s.cfg.Database.DSN
	if dsn == "" {
		return nil, fmt.Errorf("database.dsn is not configured")
	}
	scheme, err := config.DSNScheme(dsn)
	if err != nil {
		return nil, err
	}
	switch scheme {
	case "sqlite":
		return sqlite.New(ctx, dsn)
	default:
		return postgres.New(ctx, dsn)
	}
}
