package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/glutamatt/coros-mcp/internal/coach"
	"github.com/glutamatt/coros-mcp/internal/codec"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseBlocks decodes the exercises tool parameter, a JSON array of workout
// blocks.
func parseBlocks(raw string) ([]codec.Block, error) {
	var blocks []codec.Block
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		return nil, fmt.Errorf("exercises must be a JSON array of blocks: %w", err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("exercises must contain at least one block")
	}
	return blocks, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

const exercisesParamDoc = `JSON array of workout blocks. Each block: {"type": "warmup|interval|cooldown|recovery", and exactly one target of "duration_minutes"|"distance_m"|"distance_km", optional "repeats" (makes a repeat group), "rest_seconds" (recovery between repeats), "pace_per_km" ("4:30" or "4:30-5:00"), "hr_bpm" ("150" or "150-160")}. Example: [{"type":"warmup","duration_minutes":15},{"type":"interval","distance_m":800,"repeats":6,"rest_seconds":90,"pace_per_km":"4:30"},{"type":"cooldown","duration_minutes":10}]`

var toolLogin = mcp.NewTool("coros_login",
	mcp.WithDescription("Login to COROS Training Hub. Validates credentials with COROS servers and stores the session for subsequent calls. Returns user info plus session tokens that can restore the session later without re-entering credentials."),
	mcp.WithString("email", mcp.Required(), mcp.Description("COROS account email address")),
	mcp.WithString("password", mcp.Required(), mcp.Description("COROS account password")),
)

var toolSetSession = mcp.NewTool("set_coros_session",
	mcp.WithDescription("Restore a COROS session from tokens returned by a previous coros_login."),
	mcp.WithString("coros_tokens", mcp.Required(), mcp.Description("Session tokens string returned by coros_login")),
)

var toolLogout = mcp.NewTool("coros_logout",
	mcp.WithDescription("Logout from the current COROS session and clear stored session data."),
)

var toolGetUserName = mcp.NewTool("get_user_name",
	mcp.WithDescription("Get the current user's display name, user ID, and email."),
)

var toolGetAvailableFeatures = mcp.NewTool("get_available_features",
	mcp.WithDescription("List the data categories and tools this COROS server exposes."),
)

var toolGetActivities = mcp.NewTool("get_activities",
	mcp.WithDescription("Paginated list of completed activities with distance, duration, and training load."),
	mcp.WithString("start_date", mcp.Description("Earliest activity date (YYYY-MM-DD)")),
	mcp.WithString("end_date", mcp.Description("Latest activity date (YYYY-MM-DD)")),
	mcp.WithNumber("page", mcp.Description("Page number, starting at 1. Defaults to 1.")),
	mcp.WithNumber("size", mcp.Description("Page size, max 50. Defaults to 20.")),
)

var toolGetActivityDetail = mcp.NewTool("get_activity_detail",
	mcp.WithDescription("Full detail for one activity: summary metrics, laps, heart rate zones, and weather."),
	mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID from get_activities")),
)

var toolGetActivitiesSummary = mcp.NewTool("get_activities_summary",
	mcp.WithDescription("Aggregated totals for the last N days with a per-sport breakdown."),
	mcp.WithNumber("days", mcp.Description("Number of days to aggregate, max 30. Defaults to 7.")),
)

var toolGetActivityDownload = mcp.NewTool("get_activity_download",
	mcp.WithDescription("Get a temporary download URL for an activity file."),
	mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID from get_activities")),
	mcp.WithString("format", mcp.Description("File format. Defaults to fit."), mcp.Enum("fit", "tcx", "gpx", "kml", "csv")),
)

var toolDeleteActivity = mcp.NewTool("delete_activity",
	mcp.WithDescription("Permanently delete an activity from the athlete's history. This cannot be undone."),
	mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID from get_activities")),
)

var toolGetAthleteProfile = mcp.NewTool("get_athlete_profile",
	mcp.WithDescription("Athlete identity, biometrics, physiological thresholds (max HR, LTHR, threshold pace, FTP), and all training zones. Essential coaching context, call once per session."),
)

var toolGetFitnessStatus = mcp.NewTool("get_fitness_status",
	mcp.WithDescription("Current athlete status: recovery, fitness scores, stamina level, training load, current week totals, and HRV summary."),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Personal records grouped by period: week, month, year, all time."),
)

var toolGetRacePredictions = mcp.NewTool("get_race_predictions",
	mcp.WithDescription("Predicted race times and paces for 5K, 10K, half marathon, and marathon."),
)

var toolGetHRVTrend = mcp.NewTool("get_hrv_trend",
	mcp.WithDescription("Sleep HRV trend with 7-day average and current baseline."),
)

var toolGetTrainingLoad = mcp.NewTool("get_training_load",
	mcp.WithDescription("Training load analysis: recent daily metrics, weekly load vs recommended range, and periodization stages."),
)

var toolGetSportStats = mcp.NewTool("get_sport_stats",
	mcp.WithDescription("Per-sport training totals and weekly intensity distribution."),
)

var toolGetCalendar = mcp.NewTool("get_calendar",
	mcp.WithDescription("Scheduled workouts for a date range with decoded exercises, completion status, unplanned activities, races, and week stages. Defaults to the current week."),
	mcp.WithString("start_date", mcp.Description("Range start (YYYY-MM-DD). Defaults to this Monday.")),
	mcp.WithString("end_date", mcp.Description("Range end (YYYY-MM-DD). Defaults to this Sunday.")),
)

var toolGetAdherence = mcp.NewTool("get_adherence",
	mcp.WithDescription("Planned vs actual training comparison, daily and weekly. Defaults to the last four weeks."),
	mcp.WithString("start_date", mcp.Description("Range start (YYYY-MM-DD)")),
	mcp.WithString("end_date", mcp.Description("Range end (YYYY-MM-DD)")),
)

var toolCreateWorkout = mcp.NewTool("create_workout",
	mcp.WithDescription("Create a structured workout and schedule it on a date. Returns the workout ID and estimated distance, duration, and training load."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name shown in the calendar")),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date to schedule (YYYY-MM-DD)")),
	mcp.WithString("sport", mcp.Required(), mcp.Description("Sport name: running, trail, strength, hike, bike, pool_swim, open_water")),
	mcp.WithString("exercises", mcp.Required(), mcp.Description(exercisesParamDoc)),
)

var toolEstimateWorkout = mcp.NewTool("estimate_workout",
	mcp.WithDescription("Preview a workout's estimated distance, duration, and training load without saving it."),
	mcp.WithString("sport", mcp.Required(), mcp.Description("Sport name: running, trail, strength, hike, bike, pool_swim, open_water")),
	mcp.WithString("exercises", mcp.Required(), mcp.Description(exercisesParamDoc)),
	mcp.WithString("date", mcp.Description("Reference date (YYYY-MM-DD). Defaults to today.")),
)

var toolRescheduleWorkout = mcp.NewTool("reschedule_workout",
	mcp.WithDescription("Move a scheduled workout to a new date."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout ID from get_calendar or create_workout")),
	mcp.WithString("new_date", mcp.Required(), mcp.Description("New date (YYYY-MM-DD)")),
)

var toolDeleteWorkout = mcp.NewTool("delete_workout",
	mcp.WithDescription("Remove a scheduled workout from the calendar."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout ID from get_calendar")),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date the workout is scheduled on (YYYY-MM-DD)")),
)

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List training plan templates."),
	mcp.WithString("status", mcp.Description("Filter by status. Defaults to draft."), mcp.Enum("draft", "active")),
)

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Full plan detail: workouts at day offsets with decoded exercises."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan ID from list_plans")),
)

var toolCreatePlan = mcp.NewTool("create_plan",
	mcp.WithDescription("Create a multi-week training plan template from workouts at relative day offsets. Activate it later with activate_plan."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Plan name")),
	mcp.WithString("overview", mcp.Description("Plan description. Defaults to the name.")),
	mcp.WithString("workouts", mcp.Required(), mcp.Description(`JSON array of workouts: [{"day": 0, "name": "Easy Run", "sport": "running", "exercises": [...]}]. day is the offset from plan start (0 = first day); exercises uses the same block format as create_workout.`)),
)

var toolAddWorkoutToPlan = mcp.NewTool("add_workout_to_plan",
	mcp.WithDescription("Add one workout at a day offset to an existing plan template."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan ID from list_plans")),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day offset from plan start (0 = first day)")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name")),
	mcp.WithString("sport", mcp.Required(), mcp.Description("Sport name: running, trail, strength, hike, bike, pool_swim, open_water")),
	mcp.WithString("exercises", mcp.Required(), mcp.Description(exercisesParamDoc)),
)

var toolActivatePlan = mcp.NewTool("activate_plan",
	mcp.WithDescription("Apply a plan template to the calendar starting on a date. Its workouts appear as scheduled entries."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan ID from list_plans")),
	mcp.WithString("start_date", mcp.Required(), mcp.Description("First day of the plan (YYYY-MM-DD)")),
)

var toolDeletePlan = mcp.NewTool("delete_plan",
	mcp.WithDescription("Delete one or more plan templates."),
	mcp.WithString("plan_ids", mcp.Required(), mcp.Description("Comma-separated plan IDs")),
)

func (h *handlers) login(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("email parameter is required"), nil
	}
	password, err := req.RequireString("password")
	if err != nil {
		return mcp.NewToolResultError("password parameter is required"), nil
	}

	c := h.newClient()
	user, err := c.Login(ctx, email, password)
	if err != nil {
		h.log.Error("mcp coros_login", "error", err)
		return mcp.NewToolResultError("login failed: " + err.Error()), nil
	}
	if err := h.saveSession(ctx, c); err != nil {
		h.log.Error("mcp coros_login save session", "error", err)
		return mcp.NewToolResultError("storing session failed: " + err.Error()), nil
	}

	tokens, _ := c.ExportToken()
	return jsonResult(map[string]any{
		"success": true,
		"user": map[string]any{
			"name":    user.Nickname,
			"user_id": user.UserID,
			"email":   user.Email,
		},
		"session_tokens": tokens,
	})
}

func (h *handlers) setSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tokens, err := req.RequireString("coros_tokens")
	if err != nil {
		return mcp.NewToolResultError("coros_tokens parameter is required"), nil
	}

	c := h.newClient()
	if err := c.LoadToken(tokens); err != nil {
		return mcp.NewToolResultError("invalid session tokens: " + err.Error()), nil
	}
	if err := h.sessions.Put(ctx, sessionID(ctx), tokens); err != nil {
		h.log.Error("mcp set_coros_session", "error", err)
		return mcp.NewToolResultError("storing session failed: " + err.Error()), nil
	}

	return jsonResult(map[string]any{"success": true, "message": "Session restored"})
}

func (h *handlers) logout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.sessions.Delete(ctx, sessionID(ctx)); err != nil {
		h.log.Error("mcp coros_logout", "error", err)
		return mcp.NewToolResultError("clearing session failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{"success": true, "message": "Logged out"})
}

func (h *handlers) getUserName(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	user, err := c.GetAccount(ctx)
	if err != nil {
		h.log.Error("mcp get_user_name", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"name":    user.Nickname,
		"user_id": user.UserID,
		"email":   user.Email,
	})
}

func (h *handlers) getAvailableFeatures(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"platform": "COROS Training Hub",
		"auth": []string{
			"coros_login - Authenticate with COROS",
			"set_coros_session - Restore saved session",
			"coros_logout - Clear session",
		},
		"athlete": []string{
			"get_user_name - Display name and user info",
			"get_athlete_profile - Biometrics, thresholds, training zones",
			"get_fitness_status - Recovery, fitness scores, training load",
			"get_personal_records - PRs by period",
			"get_race_predictions - Predicted race times",
			"get_hrv_trend - Sleep HRV trend",
			"get_training_load - Load analysis and periodization",
			"get_sport_stats - Per-sport totals and intensity",
		},
		"activities": []string{
			"get_activities - List activities with filters",
			"get_activity_detail - Laps, zones, weather",
			"get_activities_summary - N-day totals by sport",
			"get_activity_download - Export file URL",
			"delete_activity - Permanently remove an activity",
		},
		"calendar": []string{
			"get_calendar - Scheduled workouts and races",
			"get_adherence - Planned vs actual",
		},
		"workouts": []string{
			"create_workout - Build and schedule a structured workout",
			"estimate_workout - Preview load without saving",
			"reschedule_workout - Move to a new date",
			"delete_workout - Remove from calendar",
		},
		"plans": []string{
			"list_plans", "get_plan", "create_plan",
			"add_workout_to_plan", "activate_plan", "delete_plan",
		},
		"notes": []string{
			"The COROS API does not expose sleep stages, stress, or body battery data",
		},
	})
}

func (h *handlers) getActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := coach.Activities(ctx, c,
		req.GetString("start_date", ""), req.GetString("end_date", ""),
		req.GetInt("page", 1), req.GetInt("size", 20))
	if err != nil {
		h.log.Error("mcp get_activities", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getActivityDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return mcp.NewToolResultError("activity_id parameter is required"), nil
	}
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := coach.ActivityDetail(ctx, c, activityID)
	if err != nil {
		h.log.Error("mcp get_activity_detail", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getActivitiesSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := coach.ActivitiesSummary(ctx, c, req.GetInt("days", 7))
	if err != nil {
		h.log.Error("mcp get_activities_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getActivityDownload(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return mcp.NewToolResultError("activity_id parameter is required"), nil
	}
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := coach.ActivityDownload(ctx, c, activityID, req.GetString("format", "fit"))
	if err != nil {
		h.log.Error("mcp get_activity_download", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) deleteActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return mcp.NewToolResultError("activity_id parameter is required"), nil
	}
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := coach.DeleteActivity(ctx, c, activityID)
	if err != nil {
		h.log.Error("mcp delete_activity", "error", err)
		return mcp.NewToolResultError("delete failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getAthleteProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.AthleteProfile(ctx, c)
	if err != nil {
		h.log.Error("mcp get_athlete_profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getFitnessStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.FitnessStatus(ctx, c)
	if err != nil {
		h.log.Error("mcp get_fitness_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.PersonalRecords(ctx, c)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getRacePredictions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.RacePredictions(ctx, c)
	if err != nil {
		h.log.Error("mcp get_race_predictions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getHRVTrend(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.HRVTrend(ctx, c)
	if err != nil {
		h.log.Error("mcp get_hrv_trend", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getTrainingLoad(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.TrainingLoad(ctx, c)
	if err != nil {
		h.log.Error("mcp get_training_load", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getSportStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.SportStats(ctx, c)
	if err != nil {
		h.log.Error("mcp get_sport_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.Calendar(ctx, c,
		req.GetString("start_date", ""), req.GetString("end_date", ""))
	if err != nil {
		h.log.Error("mcp get_calendar", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getAdherence(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.Adherence(ctx, c,
		req.GetString("start_date", ""), req.GetString("end_date", ""))
	if err != nil {
		h.log.Error("mcp get_adherence", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) createWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	sport, err := req.RequireString("sport")
	if err != nil {
		return mcp.NewToolResultError("sport parameter is required"), nil
	}
	rawExercises, err := req.RequireString("exercises")
	if err != nil {
		return mcp.NewToolResultError("exercises parameter is required"), nil
	}
	blocks, err := parseBlocks(rawExercises)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.CreateWorkout(ctx, c, name, date, sport, blocks)
	if err != nil {
		h.log.Error("mcp create_workout", "error", err)
		return mcp.NewToolResultError("create failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) estimateWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sport, err := req.RequireString("sport")
	if err != nil {
		return mcp.NewToolResultError("sport parameter is required"), nil
	}
	rawExercises, err := req.RequireString("exercises")
	if err != nil {
		return mcp.NewToolResultError("exercises parameter is required"), nil
	}
	blocks, err := parseBlocks(rawExercises)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.EstimateWorkout(ctx, c, sport, blocks, req.GetString("date", ""))
	if err != nil {
		h.log.Error("mcp estimate_workout", "error", err)
		return mcp.NewToolResultError("estimate failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) rescheduleWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutID, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	newDate, err := req.RequireString("new_date")
	if err != nil {
		return mcp.NewToolResultError("new_date parameter is required"), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.RescheduleWorkout(ctx, c, workoutID, newDate)
	if err != nil {
		h.log.Error("mcp reschedule_workout", "error", err)
		return mcp.NewToolResultError("reschedule failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) deleteWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutID, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.DeleteWorkout(ctx, c, workoutID, date)
	if err != nil {
		h.log.Error("mcp delete_workout", "error", err)
		return mcp.NewToolResultError("delete failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) listPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.ListPlans(ctx, c, req.GetString("status", "draft"))
	if err != nil {
		h.log.Error("mcp list_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.PlanDetail(ctx, c, planID)
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) createPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	rawWorkouts, err := req.RequireString("workouts")
	if err != nil {
		return mcp.NewToolResultError("workouts parameter is required"), nil
	}
	var workouts []coach.PlanWorkout
	if err := json.Unmarshal([]byte(rawWorkouts), &workouts); err != nil {
		return mcp.NewToolResultError("workouts must be a JSON array: " + err.Error()), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.CreatePlan(ctx, c, name, req.GetString("overview", ""), workouts)
	if err != nil {
		h.log.Error("mcp create_plan", "error", err)
		return mcp.NewToolResultError("create failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) addWorkoutToPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	day, err := req.RequireInt("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	sport, err := req.RequireString("sport")
	if err != nil {
		return mcp.NewToolResultError("sport parameter is required"), nil
	}
	rawExercises, err := req.RequireString("exercises")
	if err != nil {
		return mcp.NewToolResultError("exercises parameter is required"), nil
	}
	blocks, err := parseBlocks(rawExercises)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.AddWorkoutToPlan(ctx, c, planID, day, name, sport, blocks)
	if err != nil {
		h.log.Error("mcp add_workout_to_plan", "error", err)
		return mcp.NewToolResultError("update failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) activatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	startDate, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError("start_date parameter is required"), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.ActivatePlan(ctx, c, planID, startDate)
	if err != nil {
		h.log.Error("mcp activate_plan", "error", err)
		return mcp.NewToolResultError("activate failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) deletePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawIDs, err := req.RequireString("plan_ids")
	if err != nil {
		return mcp.NewToolResultError("plan_ids parameter is required"), nil
	}
	var planIDs []string
	for _, id := range strings.Split(rawIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			planIDs = append(planIDs, id)
		}
	}
	if len(planIDs) == 0 {
		return mcp.NewToolResultError("plan_ids must contain at least one ID"), nil
	}

	c, err := h.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := coach.DeletePlans(ctx, c, planIDs)
	if err != nil {
		h.log.Error("mcp delete_plan", "error", err)
		return mcp.NewToolResultError("delete failed: " + err.Error()), nil
	}
	return jsonResult(result)
}
