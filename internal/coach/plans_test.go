package coach

import (
	"context"
	"testing"

	"github.com/glutamatt/coros-mcp/internal/codec"
)

// TestListPlans verifies status filtering and the shaping of plan entries.
func TestListPlans(t *testing.T) {
	stub := &stubAPI{
		t: t,
		queryPlans: func(ctx context.Context, statusList []int, startNo, limit int) ([]map[string]any, error) {
			if len(statusList) != 1 || statusList[0] != 1 {
				t.Errorf("statusList = %v, want [1] for active", statusList)
			}
			return []map[string]any{{
				"id":       "p1",
				"name":     "N1117",
				"overview": "Marathon Block",
				"status":   float64(1),
				"totalDay": float64(28),
				"maxWeeks": float64(4),
				"entities": []any{map[string]any{}, map[string]any{}},
			}}, nil
		},
	}

	plans, err := ListPlans(context.Background(), stub, "active")
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans", len(plans))
	}
	p := plans[0]
	if p["name"] != "Marathon Block" {
		t.Errorf("name = %v, want overview preferred over internal name", p["name"])
	}
	if p["status"] != "active" || p["weeks"] != 4 || p["workout_count"] != 2 {
		t.Errorf("plan entry = %+v", p)
	}
}

// TestPlanDetail verifies entity/program joining and exercise decoding.
func TestPlanDetail(t *testing.T) {
	stub := &stubAPI{
		t: t,
		planDetail: func(ctx context.Context, planID string) (map[string]any, error) {
			if planID != "p7" {
				t.Errorf("planID = %q", planID)
			}
			return map[string]any{
				"id":       "p7",
				"name":     "N1117",
				"overview": "Base Building",
				"totalDay": float64(14),
				"maxWeeks": float64(2),
				"entities": []any{
					map[string]any{"idInPlan": float64(1), "dayNo": float64(3)},
				},
				"programs": []any{
					map[string]any{
						"idInPlan":  float64(1),
						"name":      "Easy Run",
						"sportType": float64(1),
						"distance":  float64(8000),
						"duration":  float64(2700),
						"exercises": []any{
							map[string]any{"exerciseType": float64(1), "targetType": float64(2), "targetValue": float64(2700)},
						},
					},
				},
			}, nil
		},
	}

	plan, err := PlanDetail(context.Background(), stub, "p7")
	if err != nil {
		t.Fatal(err)
	}
	if plan["name"] != "Base Building" {
		t.Errorf("name = %v", plan["name"])
	}
	workouts := plan["workouts"].([]map[string]any)
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts", len(workouts))
	}
	w := workouts[0]
	if w["day"] != 3 || w["distance"] != "8.0 km" || w["duration"] != "45m00s" {
		t.Errorf("workout = %+v", w)
	}
	exercises := w["exercises"].([]codec.Decoded)
	if len(exercises) != 1 || exercises[0].Type != "warmup" || exercises[0].DurationSeconds != 2700 {
		t.Errorf("exercises = %+v", exercises)
	}
}

// TestCreatePlan verifies per-workout calculation and the plan payload
// shape (template entities without dates, week math, version objects).
func TestCreatePlan(t *testing.T) {
	var addPayload map[string]any
	calcCalls := 0

	stub := &stubAPI{
		t: t,
		calculateWorkout: func(ctx context.Context, program map[string]any) (map[string]any, error) {
			calcCalls++
			return map[string]any{
				"planDistance":     float64(8000000), // cm
				"planDuration":     float64(2400),
				"planTrainingLoad": float64(70),
			}, nil
		},
		addPlan: func(ctx context.Context, payload map[string]any) (string, error) {
			addPayload = payload
			return "new-plan-id", nil
		},
	}

	workouts := []PlanWorkout{
		{Day: 0, Name: "Easy", Sport: "running", Blocks: []codec.Block{{Type: "warmup", DistanceKM: fptr(8)}}},
		{Day: 9, Name: "Long", Sport: "running", Blocks: []codec.Block{{Type: "warmup", DistanceKM: fptr(20)}}},
	}
	result, err := CreatePlan(context.Background(), stub, "Base", "Base Phase", workouts)
	if err != nil {
		t.Fatal(err)
	}

	if calcCalls != 2 {
		t.Errorf("calculate called %d times, want 2", calcCalls)
	}
	if result["plan_id"] != "new-plan-id" || result["total_days"] != 10 || result["weeks"] != 2 {
		t.Errorf("result = %+v", result)
	}

	entities := addPayload["entities"].([]map[string]any)
	if entities[0]["happenDay"] != "" || entities[1]["dayNo"] != 9 {
		t.Errorf("entities = %+v", entities)
	}
	programs := addPayload["programs"].([]map[string]any)
	if programs[0]["idInPlan"] != 1 || programs[1]["idInPlan"] != 2 {
		t.Errorf("program ids = %v, %v", programs[0]["idInPlan"], programs[1]["idInPlan"])
	}
	// Plan programs carry the calculated distance divided by 1000.
	if programs[0]["distance"] != "8000.00" {
		t.Errorf("program distance = %v, want 8000.00", programs[0]["distance"])
	}
	if addPayload["maxIdInPlan"] != 2 || addPayload["totalDay"] != 10 {
		t.Errorf("payload totals = maxIdInPlan %v, totalDay %v",
			addPayload["maxIdInPlan"], addPayload["totalDay"])
	}
	if addPayload["overview"] != "Base Phase" {
		t.Errorf("overview = %v", addPayload["overview"])
	}
}

// TestCreatePlanEmpty verifies the guard against empty plans.
func TestCreatePlanEmpty(t *testing.T) {
	if _, err := CreatePlan(context.Background(), &stubAPI{t: t}, "X", "", nil); err == nil {
		t.Error("expected error for plan without workouts")
	}
}

// TestAddWorkoutToPlan verifies id allocation and total-day recalculation.
func TestAddWorkoutToPlan(t *testing.T) {
	var updatePayload map[string]any

	stub := &stubAPI{
		t: t,
		planDetail: func(ctx context.Context, planID string) (map[string]any, error) {
			return map[string]any{
				"id":          "p1",
				"maxIdInPlan": "2",
				"totalDay":    float64(7),
				"entities": []any{
					map[string]any{"idInPlan": float64(1), "dayNo": float64(0)},
					map[string]any{"idInPlan": float64(2), "dayNo": float64(4)},
				},
				"programs": []any{
					map[string]any{"idInPlan": float64(1)},
					map[string]any{"idInPlan": float64(2)},
				},
			}, nil
		},
		calculateWorkout: func(ctx context.Context, program map[string]any) (map[string]any, error) {
			return map[string]any{"planDistance": float64(500000), "planDuration": float64(1500)}, nil
		},
		updatePlan: func(ctx context.Context, payload map[string]any) error {
			updatePayload = payload
			return nil
		},
	}

	blocks := []codec.Block{{Type: "warmup", DistanceKM: fptr(5)}}
	result, err := AddWorkoutToPlan(context.Background(), stub, "p1", 10, "Shakeout", "running", blocks)
	if err != nil {
		t.Fatal(err)
	}
	if result["workout_id"] != "3" {
		t.Errorf("workout_id = %v, want 3", result["workout_id"])
	}

	if updatePayload["maxIdInPlan"] != "3" || updatePayload["totalDay"] != 11 {
		t.Errorf("payload = maxIdInPlan %v, totalDay %v",
			updatePayload["maxIdInPlan"], updatePayload["totalDay"])
	}
	if len(updatePayload["entities"].([]any)) != 3 {
		t.Error("expected 3 entities after add")
	}
	vo := updatePayload["versionObjects"].([]map[string]any)
	if vo[0]["id"] != 3 || vo[0]["status"] != 1 {
		t.Errorf("versionObject = %+v", vo[0])
	}
}

// TestActivatePlan verifies date conversion and the execute call.
func TestActivatePlan(t *testing.T) {
	called := false
	stub := &stubAPI{
		t: t,
		executeSubPlan: func(ctx context.Context, planID string, startDate int) error {
			called = true
			if planID != "p1" || startDate != 20260907 {
				t.Errorf("executeSubPlan(%q, %d)", planID, startDate)
			}
			return nil
		},
	}
	result, err := ActivatePlan(context.Background(), stub, "p1", "2026-09-07")
	if err != nil {
		t.Fatal(err)
	}
	if !called || result["success"] != true {
		t.Error("plan was not activated")
	}

	if _, err := ActivatePlan(context.Background(), stub, "p1", "next monday"); err == nil {
		t.Error("expected error for malformed date")
	}
}

// TestDeletePlans verifies the ids are passed through.
func TestDeletePlans(t *testing.T) {
	stub := &stubAPI{
		t: t,
		deletePlansFn: func(ctx context.Context, planIDs []string) error {
			if len(planIDs) != 2 || planIDs[0] != "a" {
				t.Errorf("planIDs = %v", planIDs)
			}
			return nil
		},
	}
	result, err := DeletePlans(context.Background(), stub, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if result["success"] != true {
		t.Error("expected success")
	}
}
