package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	mcpadapter "scentquiz/internal/adapters/mcp"
	"scentquiz/internal/bootstrap"
	"scentquiz/internal/config"
	"scentquiz/internal/logging"
)

const version = "0.1.0"

func main() {
	configFile := pflag.StringP("config", "c", "", "path to config file")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("scentquiz-mcp: %v", err)
	}
	// stdout carries the protocol
	if cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("scentquiz-mcp: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	app, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("scentquiz-mcp: %v", err)
	}
	defer app.Close()

	mcpServer := server.NewMCPServer(
		"scentquiz-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{
		Catalog: app.Catalog,
		Matcher: app.Matcher,
		History: app.History,
		Users:   app.Users,
		Logger:  logger.Named("mcp"),
	}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Printf("scentquiz-mcp: %v", err)
	}
}
