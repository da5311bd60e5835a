package mcp

import (
	"context"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"leeter/internal/journal"
	"leeter/internal/mission"
)

// RecordSource supplies the merged stream. It is read on every tool call so
// answers follow the logs as the game appends to them.
type RecordSource interface {
	Records(ctx context.Context) ([]journal.Record, error)
}

// Querier runs read-only SQL against an export archive.
type Querier interface {
	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

type Options struct {
	Policy         mission.DuplicatePolicy
	BriefBlacklist []string
	BriefDedupe    []string
	Logger         *slog.Logger
}

type Server struct {
	source RecordSource
	db     Querier
	opts   Options
	mcp    *sdk.Server
}

// NewServer registers the projection tools. db may be nil, in which case
// the SQL tool is not offered.
func NewServer(source RecordSource, db Querier, opts Options, version string) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		source: source,
		db:     db,
		opts:   opts,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "leeter",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

func (s *Server) engine() *mission.Engine {
	return mission.NewEngine(s.opts.Policy, s.opts.Logger)
}
