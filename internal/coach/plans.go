package coach

import (
	"context"
	"fmt"
	"strconv"

	"github.com/glutamatt/coros-mcp/internal/codec"
)

// PlanWorkout is one workout of a plan template at a relative day offset.
type PlanWorkout struct {
	Day    int           `json:"day"`
	Name   string        `json:"name"`
	Sport  string        `json:"sport"`
	Blocks []codec.Block `json:"exercises"`
}

// ListPlans lists plan templates. status is "draft" or "active".
func ListPlans(ctx context.Context, c API, status string) ([]map[string]any, error) {
	statusList := []int{0}
	if status == "active" {
		statusList = []int{1}
	}
	raw, err := c.QueryPlans(ctx, statusList, 0, 0)
	if err != nil {
		return nil, err
	}

	plans := make([]map[string]any, 0, len(raw))
	for _, p := range raw {
		name := getString(p, "overview")
		if name == "" {
			name = getString(p, "name")
		}
		planStatus := "draft"
		if getInt(p, "status") == 1 {
			planStatus = "active"
		}
		weeks := getInt(p, "maxWeeks")
		if weeks == 0 {
			weeks = 1
		}
		entry := map[string]any{
			"id":            getString(p, "id"),
			"name":          name,
			"status":        planStatus,
			"total_days":    getInt(p, "totalDay"),
			"weeks":         weeks,
			"workout_count": len(getSlice(p, "entities")),
		}
		setIf(entry, "created", getString(p, "createTime"))
		plans = append(plans, entry)
	}
	return plans, nil
}

// PlanDetail returns a full plan with formatted workouts and decoded
// exercises.
func PlanDetail(ctx context.Context, c API, planID string) (map[string]any, error) {
	data, err := c.GetPlanDetail(ctx, planID)
	if err != nil {
		return nil, err
	}

	entityByID := make(map[int]map[string]any)
	for _, item := range getSlice(data, "entities") {
		if e, ok := item.(map[string]any); ok {
			entityByID[getInt(e, "idInPlan")] = e
		}
	}

	workouts := make([]map[string]any, 0)
	for _, item := range getSlice(data, "programs") {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		idInPlan := getInt(p, "idInPlan")
		entity := entityByID[idInPlan]

		workout := map[string]any{
			"id":       idInPlan,
			"sport":    SportName(getInt(p, "sportType")),
			"day":      getInt(entity, "dayNo"),
			"distance": FormatDistance(getFloat(p, "distance")),
			"duration": FormatDuration(getInt(p, "duration")),
		}
		setIf(workout, "name", getString(p, "name"))
		setIf(workout, "training_load", getInt(p, "trainingLoad"))
		// Active plans carry an absolute date, templates don't.
		setIf(workout, "date", CorosToDate(getInt(entity, "happenDay")))

		if decoded := decodeExercises(p["exercises"]); decoded != nil {
			workout["exercises"] = decoded
		}
		workouts = append(workouts, workout)
	}

	name := getString(data, "overview")
	if name == "" {
		name = getString(data, "name")
	}
	weeks := getInt(data, "maxWeeks")
	if weeks == 0 {
		weeks = 1
	}
	return map[string]any{
		"id":         getString(data, "id"),
		"name":       name,
		"total_days": getInt(data, "totalDay"),
		"weeks":      weeks,
		"workouts":   workouts,
	}, nil
}

// CreatePlan builds a plan template from workouts at relative day offsets.
// Each workout is run through the service-side calculation before the plan
// is saved.
func CreatePlan(ctx context.Context, c API, name, overview string, workouts []PlanWorkout) (map[string]any, error) {
	if len(workouts) == 0 {
		return nil, fmt.Errorf("a plan needs at least one workout")
	}

	entities := make([]map[string]any, 0, len(workouts))
	programs := make([]map[string]any, 0, len(workouts))
	versionObjects := make([]map[string]any, 0, len(workouts))
	maxDay := 0

	for i, w := range workouts {
		idInPlan := i + 1
		if w.Day > maxDay {
			maxDay = w.Day
		}
		sport := w.Sport
		if sport == "" {
			sport = "running"
		}
		workoutName := w.Name
		if workoutName == "" {
			workoutName = fmt.Sprintf("Workout %d", idInPlan)
		}

		program, err := calculatePlanProgram(ctx, c, workoutName, sport, w.Blocks, idInPlan)
		if err != nil {
			return nil, fmt.Errorf("workout %d (%s): %w", idInPlan, workoutName, err)
		}

		entities = append(entities, map[string]any{
			"happenDay":        "",
			"idInPlan":         idInPlan,
			"sortNo":           0,
			"dayNo":            w.Day,
			"sortNoInPlan":     0,
			"sortNoInSchedule": 0,
		})
		programs = append(programs, program)
		versionObjects = append(versionObjects, map[string]any{"id": idInPlan, "status": 1})
	}

	totalDay := maxDay + 1
	weeks := (totalDay + 6) / 7

	if overview == "" {
		overview = name
	}
	payload := map[string]any{
		"name":           "N1117", // COROS internal plan name
		"overview":       overview,
		"entities":       entities,
		"programs":       programs,
		"weekStages":     []any{},
		"maxIdInPlan":    len(workouts),
		"totalDay":       totalDay,
		"unit":           0,
		"sourceId":       defaultSourceID,
		"sourceUrl":      defaultSourceURL,
		"minWeeks":       weeks,
		"maxWeeks":       weeks,
		"region":         3,
		"pbVersion":      2,
		"versionObjects": versionObjects,
	}

	planID, err := c.AddPlan(ctx, payload)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":       true,
		"plan_id":       planID,
		"name":          overview,
		"total_days":    totalDay,
		"weeks":         weeks,
		"workout_count": len(workouts),
	}, nil
}

// AddWorkoutToPlan appends one workout at a day offset to an existing plan
// template.
func AddWorkoutToPlan(ctx context.Context, c API, planID string, day int, name, sport string, blocks []codec.Block) (map[string]any, error) {
	plan, err := c.GetPlanDetail(ctx, planID)
	if err != nil {
		return nil, err
	}

	maxID, _ := strconv.Atoi(getString(plan, "maxIdInPlan"))
	newID := maxID + 1

	program, err := calculatePlanProgram(ctx, c, name, sport, blocks, newID)
	if err != nil {
		return nil, err
	}

	newEntity := map[string]any{
		"happenDay":        "",
		"idInPlan":         newID,
		"sortNo":           0,
		"dayNo":            day,
		"sortNoInPlan":     0,
		"sortNoInSchedule": 0,
	}

	allEntities := append(getSlice(plan, "entities"), newEntity)
	allPrograms := append(getSlice(plan, "programs"), program)

	maxDay := 0
	for _, item := range allEntities {
		if e, ok := item.(map[string]any); ok {
			if d := getInt(e, "dayNo"); d > maxDay {
				maxDay = d
			}
		}
	}
	if day > maxDay {
		maxDay = day
	}
	totalDay := maxDay + 1
	weeks := (totalDay + 6) / 7

	payload := make(map[string]any, len(plan)+6)
	for k, v := range plan {
		payload[k] = v
	}
	payload["entities"] = allEntities
	payload["programs"] = allPrograms
	payload["maxIdInPlan"] = strconv.Itoa(newID)
	payload["totalDay"] = totalDay
	payload["maxWeeks"] = weeks
	payload["minWeeks"] = weeks
	payload["versionObjects"] = []map[string]any{{"id": newID, "status": 1, "type": 0}}

	if err := c.UpdatePlan(ctx, payload); err != nil {
		return nil, err
	}

	return map[string]any{
		"success":    true,
		"plan_id":    planID,
		"workout_id": strconv.Itoa(newID),
		"name":       name,
		"day":        day,
	}, nil
}

// ActivatePlan applies a plan template to the calendar starting on the
// given date.
func ActivatePlan(ctx context.Context, c API, planID, startDate string) (map[string]any, error) {
	corosDate, err := DateToCoros(startDate)
	if err != nil {
		return nil, err
	}
	if err := c.ExecuteSubPlan(ctx, planID, corosDate); err != nil {
		return nil, err
	}
	return map[string]any{
		"success":    true,
		"plan_id":    planID,
		"start_date": startDate,
		"message":    fmt.Sprintf("Plan activated starting %s. Workouts will appear in the calendar.", startDate),
	}, nil
}

// DeletePlans removes plan templates.
func DeletePlans(ctx context.Context, c API, planIDs []string) (map[string]any, error) {
	if err := c.DeletePlans(ctx, planIDs); err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "deleted": planIDs}, nil
}

// calculatePlanProgram encodes a workout's blocks, runs the calculation and
// returns a program ready to embed in a plan payload. Plan programs carry
// the calculated distance divided by 1000, unlike schedule updates which
// take the raw value.
func calculatePlanProgram(ctx context.Context, c API, name, sport string, blocks []codec.Block, idInPlan int) (map[string]any, error) {
	sportCode, _ := codec.SportCode(sport)
	exercises, isSimple, err := codec.Encode(blocks, sport)
	if err != nil {
		return nil, err
	}

	calcProgram := buildCalculateProgram(name, sportCode, isSimple, exercises)
	calcResult, err := c.CalculateWorkout(ctx, calcProgram)
	if err != nil {
		return nil, err
	}

	program := make(map[string]any, len(calcProgram)+6)
	for k, v := range calcProgram {
		program[k] = v
	}
	program["idInPlan"] = idInPlan
	program["distance"] = fmt.Sprintf("%.2f", getFloat(calcResult, "planDistance")/1000)
	program["duration"] = getInt(calcResult, "planDuration")
	program["trainingLoad"] = getInt(calcResult, "planTrainingLoad")
	program["pitch"] = getFloat(calcResult, "planPitch")
	program["exerciseBarChart"] = barChart(calcResult)
	program["distanceDisplayUnit"] = 1
	return program, nil
}
