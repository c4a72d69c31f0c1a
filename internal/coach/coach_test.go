package coach

import (
	"context"
	"testing"

	"github.com/glutamatt/coros-mcp/internal/coros"
)

// TestDateToCoros verifies YYYY-MM-DD to YYYYMMDD conversion and rejection
// of malformed input.
func TestDateToCoros(t *testing.T) {
	got, err := DateToCoros("2026-02-11")
	if err != nil {
		t.Fatal(err)
	}
	if got != 20260211 {
		t.Errorf("DateToCoros = %d, want 20260211", got)
	}

	for _, bad := range []string{"", "2026/02/11", "20260211", "2026-13-01", "tomorrow"} {
		if _, err := DateToCoros(bad); err == nil {
			t.Errorf("DateToCoros(%q) should fail", bad)
		}
	}
}

// TestCorosToDate verifies YYYYMMDD back-conversion and zero handling.
func TestCorosToDate(t *testing.T) {
	if got := CorosToDate(20260211); got != "2026-02-11" {
		t.Errorf("CorosToDate = %q, want 2026-02-11", got)
	}
	if got := CorosToDate(0); got != "" {
		t.Errorf("CorosToDate(0) = %q, want empty", got)
	}
	if got := CorosToDate(42); got != "" {
		t.Errorf("CorosToDate(42) = %q, want empty", got)
	}
}

// TestFormatDistance verifies meter and kilometer rendering.
func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{-5, "0 m"},
		{800, "800 m"},
		{999, "999 m"},
		{1000, "1.0 km"},
		{10000, "10.0 km"},
		{21097.5, "21.1 km"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

// TestFormatPaceKM verifies sec/km pace rendering.
func TestFormatPaceKM(t *testing.T) {
	if got := FormatPaceKM(330); got != "5:30/km" {
		t.Errorf("FormatPaceKM(330) = %q, want 5:30/km", got)
	}
	if got := FormatPaceKM(0); got != "" {
		t.Errorf("FormatPaceKM(0) = %q, want empty", got)
	}
}

// TestSportName verifies the activity sport table and the numeric fallback.
func TestSportName(t *testing.T) {
	if got := SportName(1); got != "Run" {
		t.Errorf("SportName(1) = %q, want Run", got)
	}
	if got := SportName(10); got != "Open Water Swim" {
		t.Errorf("SportName(10) = %q", got)
	}
	if got := SportName(57); got != "Sport_57" {
		t.Errorf("SportName(57) = %q, want Sport_57", got)
	}
}

// TestWorkoutStatus verifies the completed/partial/planned classification.
func TestWorkoutStatus(t *testing.T) {
	tests := []struct {
		name    string
		program map[string]any
		want    string
	}{
		{"no actual load", map[string]any{"planTrainingLoad": 100.0}, "planned"},
		{"full completion", map[string]any{"actualTrainingLoad": 100.0, "planTrainingLoad": 100.0}, "completed"},
		{"above threshold", map[string]any{"actualTrainingLoad": 80.0, "planTrainingLoad": 100.0}, "completed"},
		{"partial", map[string]any{"actualTrainingLoad": 50.0, "planTrainingLoad": 100.0}, "partial"},
		{"unplanned effort", map[string]any{"actualTrainingLoad": 42.0}, "completed"},
	}
	for _, tt := range tests {
		if got := workoutStatus(tt.program); got != tt.want {
			t.Errorf("%s: workoutStatus = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// TestFormatHRZones verifies boundary lists become named bpm ranges.
func TestFormatHRZones(t *testing.T) {
	zones := formatHRZones([]int{120, 140, 160, 175, 190})
	if len(zones) != 5 {
		t.Fatalf("got %d zones, want 5", len(zones))
	}
	if zones[0]["range"] != "<120 bpm" || zones[0]["name"] != "Recovery" {
		t.Errorf("zone 1 = %v", zones[0])
	}
	if zones[2]["range"] != "140-160 bpm" || zones[2]["name"] != "Tempo" {
		t.Errorf("zone 3 = %v", zones[2])
	}

	if formatHRZones([]int{190}) != nil {
		t.Error("single boundary should yield nil")
	}
}

// TestFormatPaceZones verifies open-ended first/last ranges.
func TestFormatPaceZones(t *testing.T) {
	zones := formatPaceZones([]int{360, 330, 300, 270, 240})
	if len(zones) != 5 {
		t.Fatalf("got %d zones, want 5", len(zones))
	}
	if zones[0]["range"] != "slower than 6:00/km" {
		t.Errorf("zone 1 range = %v", zones[0]["range"])
	}
	if zones[1]["range"] != "6:00/km to 5:30/km" {
		t.Errorf("zone 2 range = %v", zones[1]["range"])
	}
	if zones[4]["range"] != "faster than 4:00/km" {
		t.Errorf("zone 5 range = %v", zones[4]["range"])
	}
}

// TestGetHelpers verifies the lenient map navigation helpers.
func TestGetHelpers(t *testing.T) {
	m := map[string]any{
		"str":    "x",
		"num":    float64(7),
		"numstr": "42",
		"nested": map[string]any{"k": "v"},
		"list":   []any{1.0, 2.0},
	}
	if getString(m, "str") != "x" {
		t.Error("getString failed on string")
	}
	if getString(m, "num") != "7" {
		t.Error("getString should render numbers")
	}
	if getInt(m, "numstr") != 42 {
		t.Error("getInt should parse numeric strings")
	}
	if getInt(m, "missing") != 0 {
		t.Error("getInt on missing key should be 0")
	}
	if getMap(m, "nested") == nil || getMap(m, "str") != nil {
		t.Error("getMap type check failed")
	}
	if len(getSlice(m, "list")) != 2 || getSlice(m, "missing") != nil {
		t.Error("getSlice failed")
	}
}

// TestDecodeExercisesTolerant verifies unparseable exercise payloads yield
// nil rather than failing.
func TestDecodeExercisesTolerant(t *testing.T) {
	if decodeExercises("not a list") != nil {
		t.Error("string input should yield nil")
	}
	if decodeExercises(nil) != nil {
		t.Error("nil input should yield nil")
	}

	raw := []any{
		map[string]any{"isGroup": true, "id": 1.0, "sets": 4.0, "restType": 0.0, "restValue": 60.0},
		map[string]any{"exerciseType": 2.0, "groupId": 1.0, "targetType": 5.0, "targetValue": 40000.0},
	}
	decoded := decodeExercises(raw)
	if len(decoded) != 2 {
		t.Fatalf("got %d entries, want 2", len(decoded))
	}
	if decoded[0].Type != "repeat" || decoded[0].Repeats != 4 || decoded[0].RestSeconds != 60 {
		t.Errorf("group entry = %+v", decoded[0])
	}
	if decoded[1].Type != "interval" || decoded[1].DistanceM != 400 || !decoded[1].InGroup {
		t.Errorf("step entry = %+v", decoded[1])
	}
}

// stubAPI implements API with overridable functions; unset calls fail the
// test.
type stubAPI struct {
	t *testing.T

	accountFull      func(ctx context.Context) (map[string]any, error)
	trainingSchedule func(ctx context.Context, start, end int) (map[string]any, error)
	trainingSummary  func(ctx context.Context, start, end int) (map[string]any, error)
	updateSchedule   func(ctx context.Context, payload map[string]any) error
	estimateWorkout  func(ctx context.Context, payload map[string]any) (map[string]any, error)
	calculateWorkout func(ctx context.Context, program map[string]any) (map[string]any, error)
	queryPlans       func(ctx context.Context, statusList []int, startNo, limit int) ([]map[string]any, error)
	planDetail       func(ctx context.Context, planID string) (map[string]any, error)
	addPlan          func(ctx context.Context, payload map[string]any) (string, error)
	updatePlan       func(ctx context.Context, payload map[string]any) error
	deletePlansFn    func(ctx context.Context, planIDs []string) error
	executeSubPlan   func(ctx context.Context, planID string, startDate int) error
	dashboard        func(ctx context.Context) (map[string]any, error)
	dashboardDetail  func(ctx context.Context) (map[string]any, error)
	personalRecords  func(ctx context.Context) (map[string]any, error)
	analysis         func(ctx context.Context) (map[string]any, error)
	activities       func(ctx context.Context, q coros.ActivityQuery) (map[string]any, error)
	activityDetail   func(ctx context.Context, activityID string) (map[string]any, error)
	activityDownload func(ctx context.Context, activityID, fileType string) (string, error)
	deleteActivity   func(ctx context.Context, activityID string) error
}

var _ API = (*stubAPI)(nil)

func (s *stubAPI) GetActivities(ctx context.Context, q coros.ActivityQuery) (map[string]any, error) {
	if s.activities == nil {
		s.fail("GetActivities")
	}
	return s.activities(ctx, q)
}

func (s *stubAPI) GetActivityDetail(ctx context.Context, activityID string) (map[string]any, error) {
	if s.activityDetail == nil {
		s.fail("GetActivityDetail")
	}
	return s.activityDetail(ctx, activityID)
}

func (s *stubAPI) GetActivityDownloadURL(ctx context.Context, activityID, fileType string) (string, error) {
	if s.activityDownload == nil {
		s.fail("GetActivityDownloadURL")
	}
	return s.activityDownload(ctx, activityID, fileType)
}

func (s *stubAPI) DeleteActivity(ctx context.Context, activityID string) error {
	if s.deleteActivity == nil {
		s.fail("DeleteActivity")
	}
	return s.deleteActivity(ctx, activityID)
}

func (s *stubAPI) fail(name string) {
	s.t.Helper()
	s.t.Fatalf("unexpected call to %s", name)
}

func (s *stubAPI) GetAccountFull(ctx context.Context) (map[string]any, error) {
	if s.accountFull == nil {
		s.fail("GetAccountFull")
	}
	return s.accountFull(ctx)
}

func (s *stubAPI) GetTrainingSchedule(ctx context.Context, start, end int) (map[string]any, error) {
	if s.trainingSchedule == nil {
		s.fail("GetTrainingSchedule")
	}
	return s.trainingSchedule(ctx, start, end)
}

func (s *stubAPI) GetTrainingSummary(ctx context.Context, start, end int) (map[string]any, error) {
	if s.trainingSummary == nil {
		s.fail("GetTrainingSummary")
	}
	return s.trainingSummary(ctx, start, end)
}

func (s *stubAPI) UpdateTrainingSchedule(ctx context.Context, payload map[string]any) error {
	if s.updateSchedule == nil {
		s.fail("UpdateTrainingSchedule")
	}
	return s.updateSchedule(ctx, payload)
}

func (s *stubAPI) EstimateWorkout(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if s.estimateWorkout == nil {
		s.fail("EstimateWorkout")
	}
	return s.estimateWorkout(ctx, payload)
}

func (s *stubAPI) CalculateWorkout(ctx context.Context, program map[string]any) (map[string]any, error) {
	if s.calculateWorkout == nil {
		s.fail("CalculateWorkout")
	}
	return s.calculateWorkout(ctx, program)
}

func (s *stubAPI) QueryPlans(ctx context.Context, statusList []int, startNo, limit int) ([]map[string]any, error) {
	if s.queryPlans == nil {
		s.fail("QueryPlans")
	}
	return s.queryPlans(ctx, statusList, startNo, limit)
}

func (s *stubAPI) GetPlanDetail(ctx context.Context, planID string) (map[string]any, error) {
	if s.planDetail == nil {
		s.fail("GetPlanDetail")
	}
	return s.planDetail(ctx, planID)
}

func (s *stubAPI) AddPlan(ctx context.Context, payload map[string]any) (string, error) {
	if s.addPlan == nil {
		s.fail("AddPlan")
	}
	return s.addPlan(ctx, payload)
}

func (s *stubAPI) UpdatePlan(ctx context.Context, payload map[string]any) error {
	if s.updatePlan == nil {
		s.fail("UpdatePlan")
	}
	return s.updatePlan(ctx, payload)
}

func (s *stubAPI) DeletePlans(ctx context.Context, planIDs []string) error {
	if s.deletePlansFn == nil {
		s.fail("DeletePlans")
	}
	return s.deletePlansFn(ctx, planIDs)
}

func (s *stubAPI) ExecuteSubPlan(ctx context.Context, planID string, startDate int) error {
	if s.executeSubPlan == nil {
		s.fail("ExecuteSubPlan")
	}
	return s.executeSubPlan(ctx, planID, startDate)
}

func (s *stubAPI) GetDashboard(ctx context.Context) (map[string]any, error) {
	if s.dashboard == nil {
		s.fail("GetDashboard")
	}
	return s.dashboard(ctx)
}

func (s *stubAPI) GetDashboardDetail(ctx context.Context) (map[string]any, error) {
	if s.dashboardDetail == nil {
		s.fail("GetDashboardDetail")
	}
	return s.dashboardDetail(ctx)
}

func (s *stubAPI) GetPersonalRecords(ctx context.Context) (map[string]any, error) {
	if s.personalRecords == nil {
		s.fail("GetPersonalRecords")
	}
	return s.personalRecords(ctx)
}

func (s *stubAPI) GetAnalysis(ctx context.Context) (map[string]any, error) {
	if s.analysis == nil {
		s.fail("GetAnalysis")
	}
	return s.analysis(ctx)
}
