package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the pyformat MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("format_code",
		mcp.WithDescription("Format Python code. Pass the code inline, or a path to check which files would be reformatted"),
		mcp.WithString("code",
			mcp.Description("Python source code to format")),
		mcp.WithString("path",
			mcp.Description("File, directory or glob pattern to check instead of inline code")),
		mcp.WithString("engine",
			mcp.Enum("builtin", "autopep8", "black", "ruff"),
			mcp.Description("Formatting engine (default: from configuration)")),
		mcp.WithNumber("line_length",
			mcp.Description("Maximum line length for external engines")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively check directories (default: true)")),
	), h.HandleFormatCode)

	s.AddTool(mcp.NewTool("analyze_code",
		mcp.WithDescription("Analyze Python code: imported modules, cyclomatic complexity, unused code and definition counts"),
		mcp.WithString("code",
			mcp.Description("Python source code to analyze")),
		mcp.WithString("path",
			mcp.Description("File, directory or glob pattern to analyze instead of inline code")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively analyze directories (default: true)")),
	), h.HandleAnalyzeCode)
}
