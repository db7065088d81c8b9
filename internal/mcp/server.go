// Package mcp exposes workout history to LLM clients over the Model Context
// Protocol, so a coach can ask questions like "what's Anna's squat PR" in
// natural language.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitRecord", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitRecord workout tracking server. Query clients, the exercise library, personal records, and workout history. Weights are kilograms."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListClients, Handler: h.listClients},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetMaxWeight, Handler: h.getMaxWeight},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetLastWorkout, Handler: h.getLastWorkout},
		server.ServerTool{Tool: toolGetRecentSessions, Handler: h.getRecentSessions},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExerciseLibrary, Handler: h.exerciseLibrary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resExerciseLibrary = mcp.NewResource(
	"fitrecord://exercise_library",
	"Exercise Library",
	mcp.WithResourceDescription("All exercises with muscle groups, bodyweight flags, and default rest durations"),
	mcp.WithMIMEType("application/json"),
)
