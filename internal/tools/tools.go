// Package tools defines the MCP tools exposed by the server. Each tool is a
// struct holding its dependencies, with a Definition method describing its
// schema and a Handle method executing it.
//
// Handlers return failures as tool error results with the message built from
// the shared sentinel errors; nothing is retried here — retry is the
// caller's responsibility, which the step idempotency of the discovery
// pipeline makes safe.
package tools

import (
	"github.com/a-yossy/spotify-mcp/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// invocationLogger returns a child logger tagged with the tool name and a
// fresh correlation id for one invocation.
func invocationLogger(logger *log.Logger, tool string) *log.Logger {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return shared.WithLogger(logger, "tool", tool, "invocation", shared.GenerateID())
}

// failure logs err and converts it into a tool error result.
func failure(logger *log.Logger, msg string, err error) *mcp.CallToolResult {
	logger.Error(msg, "err", err)
	return mcp.NewToolResultErrorFromErr(msg, err)
}
