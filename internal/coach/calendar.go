package coach

import (
	"context"
	"time"
)

// Calendar returns scheduled workouts for a date range, joining schedule
// entities to their programs and decoding exercises. Defaults to the
// current week (Monday through Sunday) when dates are empty.
func Calendar(ctx context.Context, c API, startDate, endDate string) (map[string]any, error) {
	if startDate == "" || endDate == "" {
		now := time.Now()
		offset := (int(now.Weekday()) + 6) % 7 // days since Monday
		monday := now.AddDate(0, 0, -offset)
		if startDate == "" {
			startDate = monday.Format("2006-01-02")
		}
		if endDate == "" {
			endDate = monday.AddDate(0, 0, 6).Format("2006-01-02")
		}
	}
	start, err := DateToCoros(startDate)
	if err != nil {
		return nil, err
	}
	end, err := DateToCoros(endDate)
	if err != nil {
		return nil, err
	}

	data, err := c.GetTrainingSchedule(ctx, start, end)
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
			"id":               idInPlan,
			"sport":            SportName(getInt(p, "sportType")),
			"planned_distance": FormatDistance(getFloat(p, "planDistance")),
			"planned_duration": FormatDuration(getInt(p, "planDuration")),
			"status":           workoutStatus(p),
		}
		setIf(workout, "name", getString(p, "name"))
		setIf(workout, "date", CorosToDate(getInt(entity, "happenDay")))
		setIf(workout, "planned_load", getInt(p, "planTrainingLoad"))
		if d := getFloat(p, "actualDistance"); d > 0 {
			workout["actual_distance"] = FormatDistance(d)
		}
		if d := getInt(p, "actualDuration"); d > 0 {
			workout["actual_duration"] = FormatDuration(d)
		}
		setIf(workout, "actual_load", getInt(p, "actualTrainingLoad"))

		if decoded := decodeExercises(p["exercises"]); decoded != nil {
			workout["exercises"] = decoded
		}
		workouts = append(workouts, workout)
	}

	unplanned := make([]map[string]any, 0)
	for _, item := range getSlice(data, "sportDatasNotInPlan") {
		a, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"sport":    SportName(getInt(a, "sportType")),
			"distance": FormatDistance(getFloat(a, "distance")),
			"duration": FormatDuration(getInt(a, "duration")),
		}
		setIf(entry, "name", getString(a, "name"))
		setIf(entry, "date", CorosToDate(getInt(a, "happenDay")))
		setIf(entry, "training_load", getInt(a, "trainingLoad"))
		setIf(entry, "activity_id", getString(a, "labelId"))
		unplanned = append(unplanned, entry)
	}

	weekStages := make([]map[string]any, 0)
	for _, item := range getSlice(data, "weekStages") {
		if ws, ok := item.(map[string]any); ok {
			weekStages = append(weekStages, map[string]any{
				"week_start": CorosToDate(getInt(ws, "firstDayInWeek")),
				"stage":      ws["stage"],
			})
		}
	}

	result := map[string]any{
		"period":               map[string]any{"start_date": startDate, "end_date": endDate},
		"scheduled_workouts":   workouts,
		"unplanned_activities": unplanned,
		"week_stages":          weekStages,
	}
	setIf(result, "plan_name", getString(data, "name"))

	// Event tags carry races and other calendar events.
	if tags := getSlice(data, "eventTags"); len(tags) > 0 {
		events := make([]map[string]any, 0, len(tags))
		for _, item := range tags {
			et, ok := item.(map[string]any)
			if !ok {
				continue
			}
			kind := "event"
			if getInt(et, "type") == 2 {
				kind = "competition"
			}
			entry := map[string]any{"type": kind}
			setIf(entry, "name", getString(et, "name"))
			setIf(entry, "date", CorosToDate(getInt(et, "happenDay")))
			events = append(events, entry)
		}
		result["events"] = events
	}

	return result, nil
}

// Adherence compares planned vs actual training, daily and weekly.
// Defaults to the last four weeks when dates are empty.
func Adherence(ctx context.Context, c API, startDate, endDate string) (map[string]any, error) {
	if startDate == "" || endDate == "" {
		now := time.Now()
		if startDate == "" {
			startDate = now.AddDate(0, 0, -28).Format("2006-01-02")
		}
		if endDate == "" {
			endDate = now.Format("2006-01-02")
		}
	}
	start, err := DateToCoros(startDate)
	if err != nil {
		return nil, err
	}
	end, err := DateToCoros(endDate)
	if err != nil {
		return nil, err
	}

	data, err := c.GetTrainingSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}

	today := getMap(data, "todayTrainingSum")
	todayData := map[string]any{
		"actual_distance":  FormatDistance(getFloat(today, "actualDistance")),
		"planned_distance": FormatDistance(getFloat(today, "planDistance")),
		"actual_duration":  FormatDuration(getInt(today, "actualDuration")),
		"planned_duration": FormatDuration(getInt(today, "planDuration")),
	}
	setIf(todayData, "actual_load", getInt(today, "actualTrainingLoad"))
	setIf(todayData, "planned_load", getInt(today, "planTrainingLoad"))

	weeks := make([]map[string]any, 0)
	for _, item := range getSlice(data, "weekTrains") {
		w, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ws := getMap(w, "weekTrainSum")
		entry := map[string]any{
			"actual_distance":  FormatDistance(getFloat(ws, "actualDistance")),
			"planned_distance": FormatDistance(getFloat(ws, "planDistance")),
			"actual_duration":  FormatDuration(getInt(ws, "actualDuration")),
			"planned_duration": FormatDuration(getInt(ws, "planDuration")),
		}
		setIf(entry, "week_start", CorosToDate(getInt(w, "firstDayInWeek")))
		setIf(entry, "actual_load", getInt(ws, "actualTrainingLoad"))
		setIf(entry, "planned_load", getInt(ws, "planTrainingLoad"))
		weeks = append(weeks, entry)
	}

	days := make([]map[string]any, 0)
	for _, item := range getSlice(data, "dayTrainSums") {
		d, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ds := getMap(d, "dayTrainSum")
		entry := map[string]any{
			"actual_distance":  FormatDistance(getFloat(ds, "actualDistance")),
			"planned_distance": FormatDistance(getFloat(ds, "planDistance")),
		}
		setIf(entry, "date", CorosToDate(getInt(d, "happenDay")))
		setIf(entry, "actual_load", getInt(ds, "actualTrainingLoad"))
		setIf(entry, "planned_load", getInt(ds, "planTrainingLoad"))
		days = append(days, entry)
	}

	return map[string]any{
		"period": map[string]any{"start_date": startDate, "end_date": endDate},
		"today":  todayData,
		"weekly": weeks,
		"daily":  days,
	}, nil
}

// workoutStatus classifies a scheduled workout by how its actual load
// compares to the plan. 80% of planned load counts as completed.
func workoutStatus(program map[string]any) string {
	actual := getFloat(program, "actualTrainingLoad")
	planned := getFloat(program, "planTrainingLoad")
	if actual <= 0 {
		return "planned"
	}
	if planned > 0 && actual/planned < 0.8 {
		return "partial"
	}
	return "completed"
}
