package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/glutamatt/coros-mcp/internal/coach"
	"github.com/mark3labs/mcp-go/mcp"
)

var resTodayBriefing = mcp.NewResource(
	"coros://today",
	"Today's briefing",
	mcp.WithResourceDescription("Today's scheduled workouts and current fitness status"),
	mcp.WithMIMEType("application/json"),
)

var resAthleteProfile = mcp.NewResource(
	"coros://profile",
	"Athlete profile",
	mcp.WithResourceDescription("Athlete biometrics, physiological thresholds, and training zones"),
	mcp.WithMIMEType("application/json"),
)

var resWeekCalendar = mcp.NewResource(
	"coros://calendar/week",
	"Current week calendar",
	mcp.WithResourceDescription("Scheduled workouts and completed activities for the current week"),
	mcp.WithMIMEType("application/json"),
)

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) todayBriefing(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	c, err := h.client(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	calendar, err := coach.Calendar(ctx, c, today, today)
	if err != nil {
		return nil, err
	}

	status, err := coach.FitnessStatus(ctx, c)
	if err != nil {
		h.log.Warn("today briefing: fitness status failed", "error", err)
	}

	return jsonContents(req.Params.URI, map[string]any{
		"date":           today,
		"calendar":       calendar,
		"fitness_status": status,
	})
}

func (h *handlers) athleteProfile(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	c, err := h.client(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := coach.AthleteProfile(ctx, c)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, profile)
}

func (h *handlers) weekCalendar(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	c, err := h.client(ctx)
	if err != nil {
		return nil, err
	}
	calendar, err := coach.Calendar(ctx, c, "", "")
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, calendar)
}
