package coach

import (
	"context"
	"fmt"
	"math"
)

// Personal record type codes.
var recordTypeNames = map[int]string{
	7:   "1km",
	6:   "3km",
	5:   "5km",
	4:   "10km",
	8:   "1 mile",
	9:   "2 miles",
	10:  "3 miles",
	11:  "5 miles",
	101: "Longest distance",
	102: "Max elevation gain",
}

// Race prediction type codes.
var raceDistances = map[int]string{
	5: "5K",
	4: "10K",
	2: "Half Marathon",
	1: "Marathon",
}

// Record period type codes.
var periodNames = map[int]string{
	1: "week",
	2: "month",
	3: "year",
	4: "all_time",
}

// FitnessStatus combines the dashboard and dashboard-detail views into one
// snapshot: recovery, fitness scores, stamina, training load, current week
// and an HRV summary when present.
func FitnessStatus(ctx context.Context, c API) (map[string]any, error) {
	dashboard, err := c.GetDashboard(ctx)
	if err != nil {
		return nil, err
	}
	detail, err := c.GetDashboardDetail(ctx)
	if err != nil {
		return nil, err
	}

	summary := getMap(dashboard, "summaryInfo")
	detailSummary := getMap(detail, "summaryInfo")
	currentWeek := getMap(detail, "currentWeekRecord")

	recovery := map[string]any{}
	setIf(recovery, "percent", getInt(summary, "recoveryPct"))
	setIf(recovery, "state", getInt(summary, "recoveryState"))
	setIf(recovery, "full_recovery_hours", getInt(summary, "fullRecoveryHours"))

	scores := map[string]any{}
	setIf(scores, "aerobic_endurance", getFloat(summary, "aerobicEnduranceScore"))
	setIf(scores, "anaerobic_capacity", getFloat(summary, "anaerobicCapacityScore"))
	setIf(scores, "anaerobic_endurance", getFloat(summary, "anaerobicEnduranceScore"))
	setIf(scores, "lactate_threshold", getFloat(summary, "lactateThresholdCapacityScore"))

	stamina := map[string]any{}
	setIf(stamina, "level", getFloat(summary, "staminaLevel"))
	setIf(stamina, "change", getFloat(summary, "staminaLevelChange"))
	setIf(stamina, "ranking", getFloat(summary, "staminaLevelRanking"))

	load := map[string]any{}
	setIf(load, "ati", getFloat(detailSummary, "ati"))
	setIf(load, "cti", getFloat(detailSummary, "cti"))
	setIf(load, "tired_rate", getFloat(detailSummary, "tiredRateNew"))
	setIf(load, "load_ratio", getFloat(detailSummary, "trainingLoadRatio"))
	setIf(load, "load_ratio_state", getInt(detailSummary, "trainingLoadRatioState"))
	setIf(load, "recommended_daily_load", getFloat(detailSummary, "recomendTlInDays"))

	week := map[string]any{
		"distance": FormatDistance(getFloat(currentWeek, "distanceRecord")),
		"duration": FormatDuration(getInt(currentWeek, "durationRecord")),
	}
	setIf(week, "training_load", getInt(currentWeek, "tlRecord"))

	result := map[string]any{
		"recovery":       recovery,
		"fitness_scores": scores,
		"stamina":        stamina,
		"training_load":  load,
		"current_week":   week,
	}

	if hrvList := getSlice(getMap(summary, "sleepHrvData"), "sleepHrvList"); len(hrvList) > 0 {
		recent := hrvList
		if len(recent) > 7 {
			recent = recent[len(recent)-7:]
		}
		var sum float64
		var n int
		var baseline float64
		for _, item := range recent {
			h, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if v := getFloat(h, "avgSleepHrv"); v > 0 {
				sum += v
				n++
			}
			baseline = getFloat(h, "sleepHrvBase")
		}
		hrv := map[string]any{}
		if n > 0 {
			hrv["recent_7d_avg"] = math.Round(sum/float64(n)*10) / 10
		}
		setIf(hrv, "current_baseline", baseline)
		result["hrv_summary"] = hrv
	}

	return result, nil
}

// RacePredictions returns predicted race times for 5K through marathon from
// the dashboard run scores.
func RacePredictions(ctx context.Context, c API) (map[string]any, error) {
	dashboard, err := c.GetDashboard(ctx)
	if err != nil {
		return nil, err
	}
	summary := getMap(dashboard, "summaryInfo")

	predictions := make([]map[string]any, 0)
	for _, item := range getSlice(summary, "runScoreList") {
		rs, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, ok := raceDistances[getInt(rs, "type")]
		if !ok {
			continue
		}
		entry := map[string]any{"distance": name}
		setIf(entry, "predicted_time", nonZeroDuration(getInt(rs, "score")))
		setIf(entry, "pace_per_km", FormatPaceKM(getInt(rs, "pace")))
		predictions = append(predictions, entry)
	}

	return map[string]any{"predictions": predictions}, nil
}

// HRVTrend returns the sleep HRV series with a 7-day average and the
// current baseline.
func HRVTrend(ctx context.Context, c API) (map[string]any, error) {
	dashboard, err := c.GetDashboard(ctx)
	if err != nil {
		return nil, err
	}
	summary := getMap(dashboard, "summaryInfo")
	hrvList := getSlice(getMap(summary, "sleepHrvData"), "sleepHrvList")
	if len(hrvList) == 0 {
		return map[string]any{
			"message": "No HRV data available.",
			"values":  []any{},
		}, nil
	}

	values := make([]map[string]any, 0, len(hrvList))
	for _, item := range hrvList {
		h, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{}
		setIf(entry, "date", CorosToDate(getInt(h, "happenDay")))
		setIf(entry, "avg_hrv", getFloat(h, "avgSleepHrv"))
		setIf(entry, "baseline", getFloat(h, "sleepHrvBase"))
		values = append(values, entry)
	}

	result := map[string]any{"values": values, "total_days": len(values)}

	var sum, baseline float64
	var n int
	for _, item := range lastN(hrvList, 7) {
		h, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v := getFloat(h, "avgSleepHrv"); v > 0 {
			sum += v
			n++
		}
		if b := getFloat(h, "sleepHrvBase"); b > 0 {
			baseline = b
		}
	}
	if n > 0 {
		result["recent_7d_avg"] = math.Round(sum/float64(n)*10) / 10
	}
	setIf(result, "current_baseline", baseline)

	return result, nil
}

// TrainingLoad returns recent daily and weekly load plus periodization
// stages from the analysis endpoint.
func TrainingLoad(ctx context.Context, c API) (map[string]any, error) {
	data, err := c.GetAnalysis(ctx)
	if err != nil {
		return nil, err
	}

	recentDays := make([]map[string]any, 0)
	for _, item := range lastN(getSlice(data, "dayList"), 14) {
		d, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"distance": FormatDistance(getFloat(d, "distance")),
			"duration": FormatDuration(getInt(d, "duration")),
			"recommended_load_range": fmt.Sprintf("%d-%d",
				getInt(d, "recomendTlMin"), getInt(d, "recomendTlMax")),
		}
		setIf(entry, "date", CorosToDate(getInt(d, "happenDay")))
		setIf(entry, "training_load", getInt(d, "trainingLoad"))
		setIf(entry, "vo2max", getFloat(d, "vo2max"))
		setIf(entry, "ati", getFloat(d, "ati"))
		setIf(entry, "cti", getFloat(d, "cti"))
		setIf(entry, "tired_rate", getFloat(d, "tiredRateNew"))
		recentDays = append(recentDays, entry)
	}

	weeks := make([]map[string]any, 0)
	for _, item := range lastN(getSlice(data, "weekList"), 8) {
		w, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"recommended_range": fmt.Sprintf("%d-%d",
				getInt(w, "recomendTlMin"), getInt(w, "recomendTlMax")),
		}
		setIf(entry, "week_start", CorosToDate(getInt(w, "firstDayOfWeek")))
		setIf(entry, "training_load", getInt(w, "trainingLoad"))
		weeks = append(weeks, entry)
	}

	periodization := make([]map[string]any, 0)
	for _, item := range lastN(getSlice(data, "trainingWeekStageList"), 8) {
		if s, ok := item.(map[string]any); ok {
			periodization = append(periodization, map[string]any{
				"week_start": CorosToDate(getInt(s, "firstDayOfWeek")),
				"stage":      s["stage"],
			})
		}
	}

	return map[string]any{
		"recent_days":   recentDays,
		"weekly_load":   weeks,
		"periodization": periodization,
	}, nil
}

// SportStats returns per-sport totals and weekly intensity distribution.
func SportStats(ctx context.Context, c API) (map[string]any, error) {
	data, err := c.GetAnalysis(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := make([]map[string]any, 0)
	for _, item := range getSlice(data, "sportStatistic") {
		s, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"sport":    SportName(getInt(s, "sportType")),
			"distance": FormatDistance(getFloat(s, "distance")),
			"duration": FormatDuration(getInt(s, "duration")),
		}
		setIf(entry, "count", getInt(s, "count"))
		setIf(entry, "avg_hr", getInt(s, "avgHeartRate"))
		setIf(entry, "training_load", getInt(s, "trainingLoad"))
		breakdown = append(breakdown, entry)
	}

	intensity := make([]map[string]any, 0)
	for _, item := range lastN(getSlice(getMap(data, "tlIntensity"), "detailList"), 8) {
		if w, ok := item.(map[string]any); ok {
			intensity = append(intensity, map[string]any{
				"low_pct":    getFloat(w, "periodLowPct"),
				"medium_pct": getFloat(w, "periodMediumPct"),
				"high_pct":   getFloat(w, "periodHighPct"),
			})
		}
	}

	return map[string]any{
		"sport_breakdown":  breakdown,
		"weekly_intensity": intensity,
	}, nil
}

// PersonalRecords returns PRs grouped by period (week/month/year/all-time).
func PersonalRecords(ctx context.Context, c API) (map[string]any, error) {
	data, err := c.GetPersonalRecords(ctx)
	if err != nil {
		return nil, err
	}

	records := make(map[string]any)
	for _, item := range getSlice(data, "allRecordList") {
		cycle, ok := item.(map[string]any)
		if !ok {
			continue
		}
		period, ok := periodNames[getInt(cycle, "type")]
		if !ok {
			period = fmt.Sprintf("period_%d", getInt(cycle, "type"))
		}

		entries := make([]map[string]any, 0)
		for _, ri := range getSlice(cycle, "recordList") {
			r, ok := ri.(map[string]any)
			if !ok {
				continue
			}
			recordName, ok := recordTypeNames[getInt(r, "type")]
			if !ok {
				recordName = fmt.Sprintf("type_%d", getInt(r, "type"))
			}
			entry := map[string]any{
				"record": recordName,
				"sport":  SportName(getInt(r, "sportType")),
			}
			setIf(entry, "date", CorosToDate(getInt(r, "happenDay")))
			setIf(entry, "value", getFloat(r, "record"))
			setIf(entry, "name", getString(r, "name"))
			setIf(entry, "site", getString(r, "site"))
			setIf(entry, "activity_id", getString(r, "labelId"))
			entries = append(entries, entry)
		}
		records[period] = entries
	}

	return records, nil
}

func lastN(items []any, n int) []any {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
