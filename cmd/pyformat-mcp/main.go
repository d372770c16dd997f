package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/logging"
	"github.com/ludo-technologies/pyformat/internal/version"
	"github.com/ludo-technologies/pyformat/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "Configuration file path")
	pflag.Parse()

	// MCP uses stdout for JSON-RPC
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := config.LoadConfig(*configPath, cwd)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelError
	}
	logger := logging.New(os.Stderr, level)
	if cfg.Logging.File != "" {
		if fileLogger, err := logging.Open(cfg.Logging.File, level); err == nil {
			logger = fileLogger
			defer logger.Close()
		} else {
			log.Printf("logging to stderr: %v", err)
		}
	}

	server := mcpserver.NewMCPServer(
		version.Name,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, logger)))

	log.Printf("Starting %s MCP server %s\n", version.Name, version.Short())
	log.Println("Registered tools:")
	log.Println("  - format_code: Format Python code or check files")
	log.Println("  - analyze_code: Dependencies, complexity and unused code")
	log.Println("Server ready - waiting for MCP client connection...")

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
