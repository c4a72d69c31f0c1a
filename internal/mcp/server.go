package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glutamatt/coros-mcp/internal/coros"
	"github.com/glutamatt/coros-mcp/internal/session"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all COROS tools registered.
func New(sessions session.Store, region, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("COROS Training Hub", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("COROS Training Hub coaching server. Read training data (activities, fitness status, calendar, athlete profile) and write structured workouts and multi-week training plans. Call coros_login or set_coros_session before any data tool."),
	)

	h := &handlers{sessions: sessions, region: region, log: log}
	s.AddTools(h.tools()...)
	s.AddResources(
		server.ServerResource{Resource: resTodayBriefing, Handler: h.todayBriefing},
		server.ServerResource{Resource: resAthleteProfile, Handler: h.athleteProfile},
		server.ServerResource{Resource: resWeekCalendar, Handler: h.weekCalendar},
	)
	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	sessions session.Store
	region   string
	baseURL  string // overrides region routing when set, for tests
	log      *slog.Logger
}

func (h *handlers) tools() []server.ServerTool {
	return []server.ServerTool{
		// Auth and identity
		{Tool: toolLogin, Handler: h.login},
		{Tool: toolSetSession, Handler: h.setSession},
		{Tool: toolLogout, Handler: h.logout},
		{Tool: toolGetUserName, Handler: h.getUserName},
		{Tool: toolGetAvailableFeatures, Handler: h.getAvailableFeatures},

		// Activity history
		{Tool: toolGetActivities, Handler: h.getActivities},
		{Tool: toolGetActivityDetail, Handler: h.getActivityDetail},
		{Tool: toolGetActivitiesSummary, Handler: h.getActivitiesSummary},
		{Tool: toolGetActivityDownload, Handler: h.getActivityDownload},
		{Tool: toolDeleteActivity, Handler: h.deleteActivity},

		// Athlete profile and status
		{Tool: toolGetAthleteProfile, Handler: h.getAthleteProfile},
		{Tool: toolGetFitnessStatus, Handler: h.getFitnessStatus},
		{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		{Tool: toolGetRacePredictions, Handler: h.getRacePredictions},
		{Tool: toolGetHRVTrend, Handler: h.getHRVTrend},
		{Tool: toolGetTrainingLoad, Handler: h.getTrainingLoad},
		{Tool: toolGetSportStats, Handler: h.getSportStats},

		// Calendar
		{Tool: toolGetCalendar, Handler: h.getCalendar},
		{Tool: toolGetAdherence, Handler: h.getAdherence},

		// Workouts
		{Tool: toolCreateWorkout, Handler: h.createWorkout},
		{Tool: toolEstimateWorkout, Handler: h.estimateWorkout},
		{Tool: toolRescheduleWorkout, Handler: h.rescheduleWorkout},
		{Tool: toolDeleteWorkout, Handler: h.deleteWorkout},

		// Plans
		{Tool: toolListPlans, Handler: h.listPlans},
		{Tool: toolGetPlan, Handler: h.getPlan},
		{Tool: toolCreatePlan, Handler: h.createPlan},
		{Tool: toolAddWorkoutToPlan, Handler: h.addWorkoutToPlan},
		{Tool: toolActivatePlan, Handler: h.activatePlan},
		{Tool: toolDeletePlan, Handler: h.deletePlan},
	}
}

// sessionID identifies the calling MCP client. Stdio mode has a single
// session for the process lifetime.
func sessionID(ctx context.Context) string {
	if s := server.ClientSessionFromContext(ctx); s != nil {
		return s.SessionID()
	}
	return "local"
}

func (h *handlers) newClient() *coros.Client {
	if h.baseURL != "" {
		return coros.NewWithBaseURL(h.baseURL)
	}
	return coros.New(h.region)
}

// client builds an authenticated COROS client from the caller's stored
// session token.
func (h *handlers) client(ctx context.Context) (*coros.Client, error) {
	token, err := h.sessions.Get(ctx, sessionID(ctx))
	if err != nil {
		return nil, fmt.Errorf("no COROS session, call coros_login first")
	}
	c := h.newClient()
	if err := c.LoadToken(token); err != nil {
		return nil, fmt.Errorf("stored session is invalid, call coros_login again: %w", err)
	}
	return c, nil
}

// saveSession persists the client's current token under the caller's
// session ID.
func (h *handlers) saveSession(ctx context.Context, c *coros.Client) error {
	token, err := c.ExportToken()
	if err != nil {
		return err
	}
	return h.sessions.Put(ctx, sessionID(ctx), token)
}
