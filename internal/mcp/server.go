// Package mcp exposes tag resolution to editors and agents over the Model
// Context Protocol on stdio.
package mcp

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/morozRed/tagjump/internal/cursor"
	"github.com/morozRed/tagjump/internal/tags"
)

const ServerName = "tagjump"

// Server wraps the MCP server with the tag store it answers from.
type Server struct {
	mcp          *server.MCPServer
	store        *tags.Store
	registry     *cursor.Registry
	tagDir       string
	suggestLimit int
	logger       *slog.Logger
}

// NewServer creates an MCP server answering from store.
func NewServer(store *tags.Store, version string, suggestLimit int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		mcp:          server.NewMCPServer(ServerName, version),
		store:        store,
		registry:     cursor.NewDefaultRegistry(),
		tagDir:       tagDirOf(store.Path()),
		suggestLimit: suggestLimit,
		logger:       logger,
	}
	s.registerTools()
	return s
}

// Serve speaks MCP over in/out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.Info("mcp server ready", "tags", s.store.Path(), "records", s.store.Index().Len())
	return stdio.Listen(ctx, in, out)
}

// tagDirOf returns the absolute directory of the tag file, so clients get
// paths they can open regardless of their own working directory.
func tagDirOf(tagPath string) string {
	dir := filepath.Dir(tagPath)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func (s *Server) registerTools() {
	s.mcp.AddTool(resolveSymbolTool(), s.handleResolveSymbol)
	s.mcp.AddTool(lookupSymbolTool(), s.handleLookupSymbol)
	s.mcp.AddTool(symbolAtTool(), s.handleSymbolAt)
	s.mcp.AddTool(indexStatusTool(), s.handleIndexStatus)
}
