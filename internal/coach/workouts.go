package coach

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/glutamatt/coros-mcp/internal/codec"
)

// Identity the COROS exercise library stamps on workouts it did not author.
const (
	defaultSourceID  = "425868113867882496"
	defaultSourceURL = "https://d31oxp44ddzkyk.cloudfront.net/source/source_default/0/5a9db1c3363348298351aaabfd70d0f5.jpg"
)

// CreateWorkout builds a structured workout and schedules it on the given
// date. The flow is: fetch plan metadata, encode blocks, run the service
// side calculation, then push a schedule update with the new entity,
// program and version object.
func CreateWorkout(ctx context.Context, c API, name, date, sport string, blocks []codec.Block) (map[string]any, error) {
	sportCode, _ := codec.SportCode(sport)
	corosDate, err := DateToCoros(date)
	if err != nil {
		return nil, err
	}

	exercises, isSimple, err := codec.Encode(blocks, sport)
	if err != nil {
		return nil, err
	}

	info := planInfo(ctx, c, corosDate)

	calcProgram := buildCalculateProgram(name, sportCode, isSimple, exercises)
	calcResult, err := c.CalculateWorkout(ctx, calcProgram)
	if err != nil {
		return nil, err
	}

	program := buildScheduleProgram(calcProgram, calcResult, info.nextID)
	payload := map[string]any{
		"pbVersion": info.pbVersion,
		"entities": []map[string]any{{
			"happenDay":        strconv.Itoa(corosDate),
			"idInPlan":         info.nextID,
			"sortNo":           0,
			"dayNo":            0,
			"sortNoInPlan":     0,
			"sortNoInSchedule": 0,
			"exerciseBarChart": barChart(calcResult),
		}},
		"programs":       []map[string]any{program},
		"versionObjects": []map[string]any{{"id": info.nextID, "status": 1}},
	}

	if err := c.UpdateTrainingSchedule(ctx, payload); err != nil {
		return nil, err
	}

	return map[string]any{
		"success":            true,
		"workout_id":         strconv.Itoa(info.nextID),
		"name":               name,
		"date":               date,
		"sport":              sport,
		"estimated_distance": FormatDistance(distanceCM(calcResult, "planDistance")),
		"estimated_duration": FormatDuration(getInt(calcResult, "planDuration")),
		"estimated_load":     getInt(calcResult, "planTrainingLoad"),
	}, nil
}

// EstimateWorkout previews a workout's distance, duration and training load
// without saving anything. date defaults to today.
func EstimateWorkout(ctx context.Context, c API, sport string, blocks []codec.Block, date string) (map[string]any, error) {
	sportCode, _ := codec.SportCode(sport)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	corosDate, err := DateToCoros(date)
	if err != nil {
		return nil, err
	}

	exercises, isSimple, err := codec.Encode(blocks, sport)
	if err != nil {
		return nil, err
	}

	info := planInfo(ctx, c, corosDate)
	payload := map[string]any{
		"entity": map[string]any{
			"happenDay":        strconv.Itoa(corosDate),
			"idInPlan":         info.nextID,
			"sortNo":           0,
			"dayNo":            0,
			"sortNoInPlan":     0,
			"sortNoInSchedule": 0,
		},
		"program": buildEstimateProgram(info.nextID, "Preview", sportCode, isSimple, exercises),
	}

	result, err := c.EstimateWorkout(ctx, payload)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"estimated_distance": FormatDistance(distanceCM(result, "distance")),
		"estimated_duration": FormatDuration(getInt(result, "duration")),
		"estimated_load":     getInt(result, "trainingLoad"),
	}, nil
}

// RescheduleWorkout moves a scheduled workout to a new date.
func RescheduleWorkout(ctx context.Context, c API, workoutID, newDate string) (map[string]any, error) {
	newCorosDate, err := DateToCoros(newDate)
	if err != nil {
		return nil, err
	}

	// Search a window covering both the current schedule and the target.
	today := time.Now()
	end := today
	if target, err := time.Parse("2006-01-02", newDate); err == nil && target.After(end) {
		end = target
	}
	schedule, err := c.GetTrainingSchedule(ctx,
		dayInt(today.AddDate(0, 0, -7)), dayInt(end.AddDate(0, 0, 7)))
	if err != nil {
		return nil, err
	}

	entity := findByIDInPlan(getSlice(schedule, "entities"), workoutID)
	program := findByIDInPlan(getSlice(schedule, "programs"), workoutID)
	if entity == nil || program == nil {
		return nil, fmt.Errorf("workout %s not found in schedule", workoutID)
	}

	planID := getString(entity, "planId")
	entity["happenDay"] = newCorosDate

	payload := map[string]any{
		"pbVersion": getInt(schedule, "pbVersion"),
		"entities":  []map[string]any{entity},
		"programs":  []map[string]any{program},
		"versionObjects": []map[string]any{{
			"type":          0,
			"id":            workoutID,
			"planProgramId": workoutID,
			"planId":        planID,
			"status":        2,
		}},
	}
	if err := c.UpdateTrainingSchedule(ctx, payload); err != nil {
		return nil, err
	}

	name := getString(program, "name")
	if name == "" {
		name = workoutID
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Workout %q moved to %s", name, newDate),
	}, nil
}

// DeleteWorkout removes a scheduled workout from the calendar.
func DeleteWorkout(ctx context.Context, c API, workoutID, date string) (map[string]any, error) {
	corosDate, err := DateToCoros(date)
	if err != nil {
		return nil, err
	}
	schedule, err := c.GetTrainingSchedule(ctx, corosDate, corosDate)
	if err != nil {
		return nil, err
	}
	if schedule["pbVersion"] == nil {
		return nil, fmt.Errorf("no active training plan found")
	}

	entity := findByIDInPlan(getSlice(schedule, "entities"), workoutID)
	if entity == nil {
		return nil, fmt.Errorf("workout %s not found on %s", workoutID, date)
	}
	planID := getString(entity, "planId")

	name := workoutID
	if program := findByIDInPlan(getSlice(schedule, "programs"), workoutID); program != nil {
		if n := getString(program, "name"); n != "" {
			name = n
		}
	}

	payload := map[string]any{
		"pbVersion": getInt(schedule, "pbVersion"),
		"entities":  []map[string]any{},
		"programs":  []map[string]any{},
		"versionObjects": []map[string]any{{
			"id":            workoutID,
			"planProgramId": workoutID,
			"planId":        planID,
			"status":        3,
		}},
	}
	if err := c.UpdateTrainingSchedule(ctx, payload); err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Workout %q deleted", name),
	}, nil
}

type scheduleInfo struct {
	planID    string
	pbVersion int
	nextID    int
}

// planInfo fetches the plan id, pbVersion and next free idInPlan for a day.
// An unreachable or empty schedule yields defaults so a first workout can
// still be created.
func planInfo(ctx context.Context, c API, corosDate int) scheduleInfo {
	schedule, err := c.GetTrainingSchedule(ctx, corosDate, corosDate)
	if err != nil {
		return scheduleInfo{nextID: 1}
	}
	maxID, _ := strconv.Atoi(getString(schedule, "maxIdInPlan"))
	return scheduleInfo{
		planID:    getString(schedule, "id"),
		pbVersion: getInt(schedule, "pbVersion"),
		nextID:    maxID + 1,
	}
}

// distanceCM reads a distance field the service returns in centimeters
// (sometimes as a string) and converts it to meters.
func distanceCM(m map[string]any, key string) float64 {
	return getFloat(m, key) / 100
}

func barChart(calcResult map[string]any) []any {
	if chart := getSlice(calcResult, "exerciseBarChart"); chart != nil {
		return chart
	}
	return []any{}
}

func findByIDInPlan(items []any, id string) map[string]any {
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if getString(m, "idInPlan") == id {
			return m
		}
	}
	return nil
}

// buildEstimateProgram builds the lean program shape the estimate endpoint
// expects.
func buildEstimateProgram(idInPlan int, name string, sportCode int, isSimple bool, exercises []codec.Exercise) map[string]any {
	stepCount := codec.StepCount(exercises)
	subType := 65535
	sets := 0
	if isSimple {
		subType = 0
		sets = stepCount
	}
	return map[string]any{
		"idInPlan":       idInPlan,
		"name":           name,
		"sportType":      sportCode,
		"subType":        subType,
		"totalSets":      sets,
		"sets":           sets,
		"exerciseNum":    "",
		"targetType":     "",
		"targetValue":    "",
		"version":        0,
		"simple":         isSimple,
		"exercises":      exercises,
		"access":         1,
		"essence":        0,
		"estimatedTime":  0,
		"originEssence":  0,
		"overview":       "",
		"type":           0,
		"unit":           0,
		"pbVersion":      2,
		"sourceId":       defaultSourceID,
		"sourceUrl":      defaultSourceURL,
		"referExercise":  map[string]any{"intensityType": 0, "hrType": 0, "valueType": 0},
		"poolLengthId":   1,
		"poolLength":     2500,
		"poolLengthUnit": 2,
	}
}

// buildCalculateProgram builds the full program shape the calculate
// endpoint expects, with zeroed identity fields for a new workout.
func buildCalculateProgram(name string, sportCode int, isSimple bool, exercises []codec.Exercise) map[string]any {
	subType := 65535
	if isSimple {
		subType = 0
	}
	return map[string]any{
		"access":                1,
		"authorId":              "0",
		"createTimestamp":       0,
		"distance":              0,
		"duration":              0,
		"essence":               0,
		"estimatedType":         0,
		"estimatedValue":        0,
		"exerciseNum":           0,
		"exercises":             exercises,
		"headPic":               "",
		"id":                    "0",
		"idInPlan":              "0",
		"name":                  name,
		"nickname":              "",
		"originEssence":         0,
		"overview":              "",
		"pbVersion":             2,
		"planIdIndex":           0,
		"poolLength":            2500,
		"profile":               "",
		"referExercise":         map[string]any{"intensityType": 0, "hrType": 0, "valueType": 0},
		"sex":                   0,
		"shareUrl":              "",
		"simple":                isSimple,
		"sourceUrl":             defaultSourceURL,
		"sportType":             sportCode,
		"star":                  0,
		"subType":               subType,
		"targetType":            0,
		"targetValue":           0,
		"thirdPartyId":          0,
		"totalSets":             0,
		"trainingLoad":          0,
		"type":                  0,
		"unit":                  0,
		"userId":                "0",
		"version":               0,
		"videoCoverUrl":         "",
		"videoUrl":              "",
		"fastIntensityTypeName": "",
		"poolLengthId":          1,
		"poolLengthUnit":        2,
		"sourceId":              defaultSourceID,
	}
}

// buildScheduleProgram enriches a calculate program with the calculation
// results for a schedule update.
func buildScheduleProgram(calcProgram, calcResult map[string]any, idInPlan int) map[string]any {
	program := make(map[string]any, len(calcProgram)+6)
	for k, v := range calcProgram {
		program[k] = v
	}
	program["idInPlan"] = idInPlan
	program["distance"] = fmt.Sprintf("%.2f", getFloat(calcResult, "planDistance"))
	program["duration"] = getInt(calcResult, "planDuration")
	program["trainingLoad"] = getInt(calcResult, "planTrainingLoad")
	program["pitch"] = getFloat(calcResult, "planPitch")
	program["exerciseBarChart"] = barChart(calcResult)
	program["distanceDisplayUnit"] = 1 // km
	return program
}
