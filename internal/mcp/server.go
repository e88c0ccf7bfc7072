package mcp

import (
	"context"
	"errors"
	"sync"

	"idb-monitor/internal/config"
	"idb-monitor/internal/dashboard"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	serverName    = "idb-monitor"
	serverVersion = "0.1.0"
)

// Server exposes one dashboard session as MCP tools. Tool calls are
// serialized; the session follows dataset refreshes published by the holder.
type Server struct {
	cfg    *config.AppConfig
	holder *dashboard.Holder

	mu      sync.Mutex
	session *dashboard.Session
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig, holder *dashboard.Holder) *Server {
	return &Server{cfg: cfg, holder: holder}
}

// Start runs the server over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Msg("MCP server listening on stdio")
	if err := s.newMCPServer().Run(ctx, &sdk.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) newMCPServer() *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{Name: serverName, Version: serverVersion}, nil)
	s.registerTools(server)
	return server
}

// withSession runs fn under the session lock, loading the dataset on first use
// and rebasing the session when a newer dataset has been published.
func (s *Server) withSession(ctx context.Context, fn func(*dashboard.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.holder.Current()
	if errors.Is(err, dashboard.ErrNotLoaded) {
		if err := s.holder.Refresh(ctx); err != nil {
			return err
		}
		ds, err = s.holder.Current()
	}
	if err != nil {
		return err
	}

	switch {
	case s.session == nil:
		s.session = dashboard.NewSession(ds, s.cfg.PageSize)
	case s.session.Dataset() != ds:
		log.Debug().Str("load_id", ds.LoadID).Msg("Rebasing session on refreshed dataset")
		s.session.SetDataset(ds)
	}
	return fn(s.session)
}
