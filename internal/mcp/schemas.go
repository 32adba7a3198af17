package mcp

import "github.com/mark3labs/mcp-go/mcp"

func resolveSymbolTool() mcp.Tool {
	return mcp.Tool{
		Name:        "resolve_symbol",
		Description: "Resolve a symbol name to its definition: unique location, ambiguous candidate list, or not found",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbol": map[string]interface{}{
					"type":        "string",
					"description": "Exact, case-sensitive symbol name",
				},
			},
			Required: []string{"symbol"},
		},
	}
}

func lookupSymbolTool() mcp.Tool {
	return mcp.Tool{
		Name:        "lookup_symbol",
		Description: "List every tag record for a symbol name in tag file order",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbol": map[string]interface{}{
					"type":        "string",
					"description": "Exact, case-sensitive symbol name",
				},
			},
			Required: []string{"symbol"},
		},
	}
}

func symbolAtTool() mcp.Tool {
	return mcp.Tool{
		Name:        "symbol_at",
		Description: "Resolve the identifier under a cursor position in a source file",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the source file",
				},
				"line": map[string]interface{}{
					"type":        "integer",
					"description": "1-based line number",
					"minimum":     1,
				},
				"column": map[string]interface{}{
					"type":        "integer",
					"description": "1-based byte column",
					"minimum":     1,
				},
			},
			Required: []string{"path", "line", "column"},
		},
	}
}

func indexStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_status",
		Description: "Report the loaded tag file, record count and skipped lines",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
