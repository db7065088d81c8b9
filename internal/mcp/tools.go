package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// requireUUID parses a required UUID tool argument.
func requireUUID(req mcp.CallToolRequest, key string) (uuid.UUID, error) {
	s, err := req.RequireString(key)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(s)
}

// --- Tool definitions ---

var toolListClients = mcp.NewTool("list_clients",
	mcp.WithDescription("List all clients with their IDs. Use the IDs with the other tools."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise library with muscle groups and default rest durations."),
	mcp.WithString("muscle_group", mcp.Description("Filter by muscle group"),
		mcp.Enum("chest", "back", "shoulders", "biceps", "triceps", "legs", "core", "cardio", "full_body")),
)

var toolGetMaxWeight = mcp.NewTool("get_max_weight",
	mcp.WithDescription("Get a client's personal record (max completed weight in kg) for one exercise. Only completed sets from finished sessions count. Returns null when the client has never completed the exercise."),
	mcp.WithString("client_id", mcp.Required(), mcp.Description("Client UUID")),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Get a client's personal records across all exercises they have completed, with the date each exercise was last performed."),
	mcp.WithString("client_id", mcp.Required(), mcp.Description("Client UUID")),
)

var toolGetLastWorkout = mcp.NewTool("get_last_workout",
	mcp.WithDescription("Get the exercises and sets from a client's most recent finished session. Returns an empty list when the client has no finished sessions."),
	mcp.WithString("client_id", mcp.Required(), mcp.Description("Client UUID")),
)

var toolGetRecentSessions = mcp.NewTool("get_recent_sessions",
	mcp.WithDescription("List a client's recent workout sessions, newest first."),
	mcp.WithString("client_id", mcp.Required(), mcp.Description("Client UUID")),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to 10.")),
)

// --- Tool handlers ---

func (h *handlers) listClients(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clients, err := h.ds.ListClients(ctx)
	if err != nil {
		h.log.Error("mcp list_clients", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(clients)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var exercises []models.Exercise
	var err error

	if group := req.GetString("muscle_group", ""); group != "" {
		mg := models.MuscleGroup(group)
		if !mg.Valid() {
			return mcp.NewToolResultError("unknown muscle group: " + group), nil
		}
		exercises, err = h.ds.ListExercisesByMuscleGroup(ctx, mg)
	} else {
		exercises, err = h.ds.ListExercises(ctx)
	}
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMaxWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := requireUUID(req, "client_id")
	if err != nil {
		return mcp.NewToolResultError("client_id must be a valid UUID"), nil
	}
	exerciseID, err := requireUUID(req, "exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id must be a valid UUID"), nil
	}

	max, err := h.ds.MaxCompletedWeight(ctx, clientID, exerciseID)
	if err != nil {
		h.log.Error("mcp get_max_weight", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]*float64{"max_weight_kg": max})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := requireUUID(req, "client_id")
	if err != nil {
		return mcp.NewToolResultError("client_id must be a valid UUID"), nil
	}

	history, err := h.ds.ExerciseHistory(ctx, clientID)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLastWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := requireUUID(req, "client_id")
	if err != nil {
		return mcp.NewToolResultError("client_id must be a valid UUID"), nil
	}

	exercises, err := h.ds.LastCompletedWorkoutExercises(ctx, clientID)
	if err != nil {
		h.log.Error("mcp get_last_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := requireUUID(req, "client_id")
	if err != nil {
		return mcp.NewToolResultError("client_id must be a valid UUID"), nil
	}
	limit := req.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	sessions, err := h.ds.RecentSessions(ctx, clientID, limit)
	if err != nil {
		h.log.Error("mcp get_recent_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) exerciseLibrary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(exercises)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
