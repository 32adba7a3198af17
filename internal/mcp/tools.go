package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/morozRed/tagjump/internal/search"
	"github.com/morozRed/tagjump/internal/tags"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602
	ErrorCodeInternalError = -32603
)

const maxReportedWarnings = 5

func (s *Server) handleResolveSymbol(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	symbol, err := requireString(args, "symbol")
	if err != nil {
		return nil, err
	}

	index := s.store.Index()
	return mcp.NewToolResultText(formatJSON(s.resolutionPayload(index, tags.Resolve(index, symbol)))), nil
}

func (s *Server) handleLookupSymbol(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	symbol, err := requireString(args, "symbol")
	if err != nil {
		return nil, err
	}

	matches := tags.RecordsInDir(s.store.Index().Lookup(symbol), s.tagDir)
	if matches == nil {
		matches = []tags.Record{}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":   symbol,
		"count":   len(matches),
		"matches": matches,
	})), nil
}

func (s *Server) handleSymbolAt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	path, err := requireString(args, "path")
	if err != nil {
		return nil, err
	}
	line := getIntDefault(args, "line", 0)
	column := getIntDefault(args, "column", 0)
	if line < 1 || column < 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "line and column must be >= 1", map[string]interface{}{
			"line":   line,
			"column": column,
		})
	}

	word, err := s.registry.ReadWordAt(ctx, path, line, column)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "no symbol at position", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	index := s.store.Index()
	payload := s.resolutionPayload(index, tags.Resolve(index, word.Text))
	payload["word"] = word
	return mcp.NewToolResultText(formatJSON(payload)), nil
}

func (s *Server) handleIndexStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, newMCPError(ErrorCodeInternalError, "tag file not loaded", nil)
	}

	response := map[string]interface{}{
		"path":          s.store.Path(),
		"records":       snap.Index.Len(),
		"symbols":       len(snap.Index.Symbols()),
		"skipped_lines": len(snap.Warnings),
		"loaded_at":     snap.LoadedAt.Format(time.RFC3339),
	}
	if len(snap.Warnings) > 0 {
		warnings := snap.Warnings
		if len(warnings) > maxReportedWarnings {
			warnings = warnings[:maxReportedWarnings]
		}
		response["warnings"] = warnings
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

func (s *Server) resolutionPayload(index *tags.Index, resolution tags.Resolution) map[string]interface{} {
	resolution = resolution.InDir(s.tagDir)
	payload := map[string]interface{}{
		"status": resolution.Status.String(),
		"query":  resolution.Query,
	}
	switch resolution.Status {
	case tags.Unique:
		payload["record"] = resolution.Record
	case tags.Ambiguous:
		payload["candidates"] = resolution.Candidates
	case tags.NotFound:
		if suggestions := search.Suggest(index, resolution.Query, s.suggestLimit); len(suggestions) > 0 {
			payload["suggestions"] = suggestions
		}
	}
	return payload
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func requireString(args map[string]interface{}, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
			"param":  key,
			"reason": "missing or empty",
		})
	}
	return value, nil
}

// getIntDefault accepts both JSON numbers (float64) and Go ints.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}
