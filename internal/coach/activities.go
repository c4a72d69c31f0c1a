package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glutamatt/coros-mcp/internal/coros"
)

// Activities returns a formatted page of the activity list. startDate and
// endDate are optional YYYY-MM-DD bounds.
func Activities(ctx context.Context, c API, startDate, endDate string, page, size int) (map[string]any, error) {
	q := coros.ActivityQuery{Page: page, Size: size}
	if q.Size > 50 {
		q.Size = 50
	}
	var err error
	if startDate != "" {
		if q.StartDay, err = DateToCoros(startDate); err != nil {
			return nil, err
		}
	}
	if endDate != "" {
		if q.EndDay, err = DateToCoros(endDate); err != nil {
			return nil, err
		}
	}

	data, err := c.GetActivities(ctx, q)
	if err != nil {
		return nil, err
	}

	activities := make([]map[string]any, 0)
	for _, item := range getSlice(data, "dataList") {
		a, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"sport":    SportName(getInt(a, "sportType")),
			"distance": FormatDistance(getFloat(a, "distance")),
			"duration": FormatDuration(getInt(a, "workoutTime")),
		}
		setIf(entry, "id", getString(a, "labelId"))
		setIf(entry, "date", CorosToDate(getInt(a, "date")))
		setIf(entry, "name", getString(a, "name"))
		setIf(entry, "training_load", getInt(a, "trainingLoad"))
		setIf(entry, "device", getString(a, "device"))
		activities = append(activities, entry)
	}

	return map[string]any{
		"count":        getInt(data, "count"),
		"total_pages":  getInt(data, "totalPage"),
		"current_page": getInt(data, "pageNumber"),
		"activities":   activities,
	}, nil
}

// ActivityDetail returns one activity with summary metrics, laps, HR zones
// and weather.
func ActivityDetail(ctx context.Context, c API, activityID string) (map[string]any, error) {
	data, err := c.GetActivityDetail(ctx, activityID)
	if err != nil {
		return nil, err
	}
	summary := getMap(data, "summary")

	result := map[string]any{
		"activity_id": activityID,
		"sport":       SportName(getInt(summary, "sportType")),
		"distance":    FormatDistance(getFloat(summary, "distance")),
	}
	setIf(result, "name", getString(summary, "name"))
	setIf(result, "start_time", getInt(summary, "startTimestamp"))
	setIf(result, "total_time", nonZeroDuration(getInt(summary, "totalTime")))
	setIf(result, "workout_time", nonZeroDuration(getInt(summary, "workoutTime")))
	setIf(result, "avg_pace", FormatPaceKM(getInt(summary, "avgPace")))
	setIf(result, "avg_hr", getInt(summary, "avgHr"))
	setIf(result, "max_hr", getInt(summary, "maxHr"))
	setIf(result, "avg_cadence", getInt(summary, "avgCadence"))
	setIf(result, "elevation_gain", getFloat(summary, "elevGain"))
	setIf(result, "total_descent", getFloat(summary, "totalDescent"))
	setIf(result, "avg_power", getInt(summary, "avgPower"))
	setIf(result, "normalized_power", getInt(summary, "np"))
	setIf(result, "training_load", getInt(summary, "trainingLoad"))
	setIf(result, "calories", getInt(summary, "calories"))
	setIf(result, "aerobic_effect", getFloat(summary, "aerobicEffect"))
	setIf(result, "anaerobic_effect", getFloat(summary, "anaerobicEffect"))

	var laps []map[string]any
	for _, item := range getSlice(data, "lapList") {
		lapData, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, li := range getSlice(lapData, "lapItemList") {
			lap, ok := li.(map[string]any)
			if !ok {
				continue
			}
			entry := map[string]any{
				"lap":      getInt(lap, "lapIndex"),
				"distance": FormatDistance(getFloat(lap, "distance")),
				"time":     FormatDuration(getInt(lap, "time")),
			}
			setIf(entry, "avg_pace", FormatPaceKM(getInt(lap, "avgPace")))
			setIf(entry, "avg_hr", getInt(lap, "avgHr"))
			setIf(entry, "max_hr", getInt(lap, "maxHr"))
			setIf(entry, "elevation_gain", getFloat(lap, "elevGain"))
			laps = append(laps, entry)
		}
	}
	if len(laps) > 0 {
		result["laps"] = laps
	}

	// Zone type 1 is heart rate.
	for _, item := range getSlice(data, "zoneList") {
		zoneData, ok := item.(map[string]any)
		if !ok || getInt(zoneData, "type") != 1 {
			continue
		}
		var zones []map[string]any
		for _, zi := range getSlice(zoneData, "zoneItemList") {
			z, ok := zi.(map[string]any)
			if !ok {
				continue
			}
			entry := map[string]any{
				"zone":  getInt(z, "zoneIndex"),
				"range": getString(z, "leftScope") + "-" + getString(z, "rightScope") + " bpm",
				"time":  FormatDuration(getInt(z, "second")),
			}
			setIf(entry, "percent", getFloat(z, "percent"))
			zones = append(zones, entry)
		}
		if len(zones) > 0 {
			result["hr_zones"] = zones
		}
	}

	if weather := getMap(data, "weather"); weather != nil && weather["temperature"] != nil {
		w := map[string]any{"temperature_c": getFloat(weather, "temperature")}
		setIf(w, "feels_like_c", getFloat(weather, "bodyFeelTemp"))
		setIf(w, "humidity_pct", getFloat(weather, "humidity"))
		setIf(w, "wind_speed_ms", getFloat(weather, "windSpeed"))
		result["weather"] = w
	}

	return result, nil
}

// ActivitiesSummary aggregates the last N days: totals plus a per-sport
// breakdown. days is capped at 30.
func ActivitiesSummary(ctx context.Context, c API, days int) (map[string]any, error) {
	if days <= 0 {
		days = 7
	}
	if days > 30 {
		days = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	data, err := c.GetActivities(ctx, coros.ActivityQuery{
		Page:     1,
		Size:     50,
		StartDay: dayInt(start),
		EndDay:   dayInt(end),
	})
	if err != nil {
		return nil, err
	}

	type sportTotals struct {
		count    int
		distance float64
		seconds  int
	}

	var totalDistance float64
	var totalTime, totalLoad, count int
	bySport := make(map[string]*sportTotals)
	var sportOrder []string

	for _, item := range getSlice(data, "dataList") {
		a, ok := item.(map[string]any)
		if !ok {
			continue
		}
		count++
		totalDistance += getFloat(a, "distance")
		totalTime += getInt(a, "workoutTime")
		totalLoad += getInt(a, "trainingLoad")

		sport := SportName(getInt(a, "sportType"))
		st := bySport[sport]
		if st == nil {
			st = &sportTotals{}
			bySport[sport] = st
			sportOrder = append(sportOrder, sport)
		}
		st.count++
		st.distance += getFloat(a, "distance")
		st.seconds += getInt(a, "workoutTime")
	}

	breakdown := make(map[string]any, len(bySport))
	for _, sport := range sportOrder {
		st := bySport[sport]
		breakdown[sport] = map[string]any{
			"count":    st.count,
			"distance": FormatDistance(st.distance),
			"duration": FormatDuration(st.seconds),
		}
	}

	return map[string]any{
		"period": map[string]any{
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
			"days":       days,
		},
		"totals": map[string]any{
			"activity_count": count,
			"distance":       FormatDistance(totalDistance),
			"duration":       FormatDuration(totalTime),
			"training_load":  totalLoad,
		},
		"by_sport": breakdown,
	}, nil
}

// ActivityDownload returns a temporary file download URL for an activity.
// format is one of fit, tcx, gpx, kml, csv; unknown values fall back to fit.
func ActivityDownload(ctx context.Context, c API, activityID, format string) (map[string]any, error) {
	fileTypes := map[string]string{
		"fit": coros.FileFIT,
		"tcx": coros.FileTCX,
		"gpx": coros.FileGPX,
		"kml": coros.FileKML,
		"csv": coros.FileCSV,
	}
	format = strings.ToLower(format)
	fileType, ok := fileTypes[format]
	if !ok {
		format, fileType = "fit", coros.FileFIT
	}

	url, err := c.GetActivityDownloadURL(ctx, activityID, fileType)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"activity_id":  activityID,
		"format":       format,
		"download_url": url,
	}, nil
}

// DeleteActivity permanently removes an activity from the athlete's history.
func DeleteActivity(ctx context.Context, c API, activityID string) (map[string]any, error) {
	if activityID == "" {
		return nil, fmt.Errorf("activity ID is required")
	}
	if err := c.DeleteActivity(ctx, activityID); err != nil {
		return nil, err
	}
	return map[string]any{
		"success":     true,
		"activity_id": activityID,
		"message":     "Activity deleted",
	}, nil
}

func nonZeroDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return FormatDuration(seconds)
}

func dayInt(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
