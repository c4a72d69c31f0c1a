package coach

import (
	"context"
	"testing"

	"github.com/glutamatt/coros-mcp/internal/codec"
	"github.com/glutamatt/coros-mcp/internal/coros"
)

// TestCalendar verifies the entity/program join, exercise decoding and
// event tag shaping.
func TestCalendar(t *testing.T) {
	stub := &stubAPI{
		t: t,
		trainingSchedule: func(ctx context.Context, start, end int) (map[string]any, error) {
			if start != 20260901 || end != 20260907 {
				t.Errorf("dates = %d..%d", start, end)
			}
			return map[string]any{
				"name": "Fall Marathon Plan",
				"entities": []any{
					map[string]any{"idInPlan": float64(1), "happenDay": float64(20260902)},
				},
				"programs": []any{
					map[string]any{
						"idInPlan":           float64(1),
						"name":               "Intervals",
						"sportType":          float64(1),
						"planDistance":       float64(10000),
						"planDuration":       float64(3000),
						"planTrainingLoad":   float64(90),
						"actualTrainingLoad": float64(88),
						"exercises": []any{
							map[string]any{"isGroup": true, "id": float64(1), "sets": float64(5)},
							map[string]any{"exerciseType": float64(2), "groupId": float64(1), "targetType": float64(5), "targetValue": float64(80000)},
						},
					},
				},
				"sportDatasNotInPlan": []any{
					map[string]any{
						"name":      "Morning Shakeout",
						"sportType": float64(1),
						"happenDay": float64(20260903),
						"distance":  float64(5000),
						"duration":  float64(1500),
						"labelId":   "act-9",
					},
				},
				"weekStages": []any{
					map[string]any{"firstDayInWeek": float64(20260831), "stage": float64(2)},
				},
				"eventTags": []any{
					map[string]any{"name": "City Marathon", "type": float64(2), "happenDay": float64(20261011)},
				},
			}, nil
		},
	}

	result, err := Calendar(context.Background(), stub, "2026-09-01", "2026-09-07")
	if err != nil {
		t.Fatal(err)
	}

	if result["plan_name"] != "Fall Marathon Plan" {
		t.Errorf("plan_name = %v", result["plan_name"])
	}

	workouts := result["scheduled_workouts"].([]map[string]any)
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts", len(workouts))
	}
	w := workouts[0]
	if w["date"] != "2026-09-02" || w["planned_distance"] != "10.0 km" || w["status"] != "completed" {
		t.Errorf("workout = %+v", w)
	}
	exercises := w["exercises"].([]codec.Decoded)
	if len(exercises) != 2 || exercises[0].Type != "repeat" || exercises[0].Repeats != 5 {
		t.Errorf("exercises = %+v", exercises)
	}
	if exercises[1].DistanceM != 800 || !exercises[1].InGroup {
		t.Errorf("work step = %+v", exercises[1])
	}

	unplanned := result["unplanned_activities"].([]map[string]any)
	if len(unplanned) != 1 || unplanned[0]["activity_id"] != "act-9" {
		t.Errorf("unplanned = %+v", unplanned)
	}

	events := result["events"].([]map[string]any)
	if len(events) != 1 || events[0]["type"] != "competition" || events[0]["date"] != "2026-10-11" {
		t.Errorf("events = %+v", events)
	}
}

// TestAdherence verifies daily and weekly planned-vs-actual shaping.
func TestAdherence(t *testing.T) {
	stub := &stubAPI{
		t: t,
		trainingSummary: func(ctx context.Context, start, end int) (map[string]any, error) {
			return map[string]any{
				"todayTrainingSum": map[string]any{
					"actualDistance":     float64(5000),
					"planDistance":       float64(8000),
					"actualDuration":     float64(1500),
					"planDuration":       float64(2400),
					"actualTrainingLoad": float64(40),
					"planTrainingLoad":   float64(65),
				},
				"weekTrains": []any{
					map[string]any{
						"firstDayInWeek": float64(20260824),
						"weekTrainSum": map[string]any{
							"actualDistance": float64(42000),
							"planDistance":   float64(50000),
						},
					},
				},
				"dayTrainSums": []any{
					map[string]any{
						"happenDay": float64(20260825),
						"dayTrainSum": map[string]any{
							"actualDistance": float64(10000),
							"planDistance":   float64(10000),
						},
					},
				},
			}, nil
		},
	}

	result, err := Adherence(context.Background(), stub, "2026-08-01", "2026-08-28")
	if err != nil {
		t.Fatal(err)
	}

	today := result["today"].(map[string]any)
	if today["actual_distance"] != "5.0 km" || today["planned_load"] != 65 {
		t.Errorf("today = %+v", today)
	}
	weekly := result["weekly"].([]map[string]any)
	if len(weekly) != 1 || weekly[0]["week_start"] != "2026-08-24" {
		t.Errorf("weekly = %+v", weekly)
	}
	daily := result["daily"].([]map[string]any)
	if len(daily) != 1 || daily[0]["date"] != "2026-08-25" {
		t.Errorf("daily = %+v", daily)
	}
}

// TestActivities verifies list shaping and the size cap.
func TestActivities(t *testing.T) {
	stub := &stubAPI{
		t: t,
		activities: func(ctx context.Context, q coros.ActivityQuery) (map[string]any, error) {
			if q.Size != 50 {
				t.Errorf("size = %d, want capped at 50", q.Size)
			}
			if q.StartDay != 20260801 {
				t.Errorf("startDay = %d", q.StartDay)
			}
			return map[string]any{
				"count":      float64(1),
				"totalPage":  float64(1),
				"pageNumber": float64(1),
				"dataList": []any{
					map[string]any{
						"labelId":      "a1",
						"date":         float64(20260815),
						"name":         "Sunday Long Run",
						"sportType":    float64(1),
						"distance":     float64(25000),
						"workoutTime":  float64(7800),
						"trainingLoad": float64(140),
						"device":       "PACE 3",
					},
				},
			}, nil
		},
	}

	result, err := Activities(context.Background(), stub, "2026-08-01", "", 1, 200)
	if err != nil {
		t.Fatal(err)
	}
	activities := result["activities"].([]map[string]any)
	if len(activities) != 1 {
		t.Fatalf("got %d activities", len(activities))
	}
	a := activities[0]
	if a["sport"] != "Run" || a["distance"] != "25.0 km" || a["duration"] != "2h10m00s" || a["date"] != "2026-08-15" {
		t.Errorf("activity = %+v", a)
	}
}

// TestDeleteActivity verifies the delete flow passes the ID through and
// rejects empty input before any API call.
func TestDeleteActivity(t *testing.T) {
	var deleted string
	stub := &stubAPI{
		t: t,
		deleteActivity: func(ctx context.Context, activityID string) error {
			deleted = activityID
			return nil
		},
	}

	result, err := DeleteActivity(context.Background(), stub, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != "a1" {
		t.Errorf("deleted = %q, want a1", deleted)
	}
	if result["success"] != true || result["activity_id"] != "a1" {
		t.Errorf("result = %+v", result)
	}

	if _, err := DeleteActivity(context.Background(), &stubAPI{t: t}, ""); err == nil {
		t.Error("expected error for empty activity ID")
	}
}

// TestFitnessStatus verifies the dashboard merge.
func TestFitnessStatus(t *testing.T) {
	stub := &stubAPI{
		t: t,
		dashboard: func(ctx context.Context) (map[string]any, error) {
			return map[string]any{
				"summaryInfo": map[string]any{
					"recoveryPct":  float64(85),
					"staminaLevel": float64(62.5),
				},
			}, nil
		},
		dashboardDetail: func(ctx context.Context) (map[string]any, error) {
			return map[string]any{
				"summaryInfo": map[string]any{
					"ati": float64(55),
					"cti": float64(48),
				},
				"currentWeekRecord": map[string]any{
					"distanceRecord": float64(32000),
					"durationRecord": float64(10800),
				},
			}, nil
		},
	}

	result, err := FitnessStatus(context.Background(), stub)
	if err != nil {
		t.Fatal(err)
	}
	recovery := result["recovery"].(map[string]any)
	if recovery["percent"] != 85 {
		t.Errorf("recovery = %+v", recovery)
	}
	load := result["training_load"].(map[string]any)
	if load["ati"] != 55.0 || load["cti"] != 48.0 {
		t.Errorf("load = %+v", load)
	}
	week := result["current_week"].(map[string]any)
	if week["distance"] != "32.0 km" || week["duration"] != "3h00m00s" {
		t.Errorf("week = %+v", week)
	}
}

// TestRacePredictions verifies type-code mapping and formatting.
func TestRacePredictions(t *testing.T) {
	stub := &stubAPI{
		t: t,
		dashboard: func(ctx context.Context) (map[string]any, error) {
			return map[string]any{
				"summaryInfo": map[string]any{
					"runScoreList": []any{
						map[string]any{"type": float64(1), "score": float64(12600), "pace": float64(299)},
						map[string]any{"type": float64(99), "score": float64(1)},
					},
				},
			}, nil
		},
	}

	result, err := RacePredictions(context.Background(), stub)
	if err != nil {
		t.Fatal(err)
	}
	predictions := result["predictions"].([]map[string]any)
	if len(predictions) != 1 {
		t.Fatalf("got %d predictions, want unknown types dropped", len(predictions))
	}
	p := predictions[0]
	if p["distance"] != "Marathon" || p["predicted_time"] != "3h30m00s" || p["pace_per_km"] != "4:59/km" {
		t.Errorf("prediction = %+v", p)
	}
}

// TestPersonalRecords verifies period and record type naming.
func TestPersonalRecords(t *testing.T) {
	stub := &stubAPI{
		t: t,
		personalRecords: func(ctx context.Context) (map[string]any, error) {
			return map[string]any{
				"allRecordList": []any{
					map[string]any{
						"type": float64(4),
						"recordList": []any{
							map[string]any{
								"type":      float64(5),
								"happenDay": float64(20260601),
								"sportType": float64(1),
								"record":    float64(1185),
								"labelId":   "act-77",
							},
						},
					},
				},
			}, nil
		},
	}

	result, err := PersonalRecords(context.Background(), stub)
	if err != nil {
		t.Fatal(err)
	}
	allTime := result["all_time"].([]map[string]any)
	if len(allTime) != 1 {
		t.Fatalf("got %d records", len(allTime))
	}
	r := allTime[0]
	if r["record"] != "5km" || r["date"] != "2026-06-01" || r["value"] != 1185.0 {
		t.Errorf("record = %+v", r)
	}
}

// TestAthleteProfile verifies thresholds and zone formatting end to end.
func TestAthleteProfile(t *testing.T) {
	stub := &stubAPI{
		t: t,
		accountFull: func(ctx context.Context) (map[string]any, error) {
			return map[string]any{
				"userId":   "u1",
				"nickname": "Runner",
				"birthday": float64(19900415),
				"sex":      float64(2),
				"stature":  float64(170),
				"weight":   float64(60.5),
				"zoneData": map[string]any{
					"maxHr":     float64(192),
					"rhr":       float64(44),
					"lthr":      float64(172),
					"ltsp":      float64(255),
					"maxHrZone": []any{float64(120), float64(140), float64(160), float64(175), float64(192)},
					"ltspZone":  []any{float64(360), float64(330), float64(300), float64(270), float64(240)},
				},
			}, nil
		},
	}

	profile, err := AthleteProfile(context.Background(), stub)
	if err != nil {
		t.Fatal(err)
	}
	identity := profile["identity"].(map[string]any)
	if identity["sex"] != "female" || identity["birthday"] != "1990-04-15" {
		t.Errorf("identity = %+v", identity)
	}
	thresholds := profile["thresholds"].(map[string]any)
	if thresholds["lthr"] != 172 || thresholds["ltsp"] != "4:15/km" {
		t.Errorf("thresholds = %+v", thresholds)
	}
	hrZones := profile["hr_zones"].([]map[string]any)
	if len(hrZones) != 5 || hrZones[4]["name"] != "VO2max" {
		t.Errorf("hr_zones = %+v", hrZones)
	}
	if _, ok := profile["power_zones"]; ok {
		t.Error("power_zones should be absent when not provided")
	}
}
