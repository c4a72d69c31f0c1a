// Package coach shapes raw COROS API payloads into compact, human-readable
// structures for tool output, and drives the multi-step write flows
// (create/estimate/reschedule/delete workouts, build and activate plans).
package coach

import (
	"context"
	"fmt"
	"time"

	"github.com/glutamatt/coros-mcp/internal/coros"
)

// API is the subset of the COROS client the coach layer calls. Declared
// here so tests can stand in for the real transport.
type API interface {
	GetAccountFull(ctx context.Context) (map[string]any, error)
	GetActivities(ctx context.Context, q coros.ActivityQuery) (map[string]any, error)
	GetActivityDetail(ctx context.Context, activityID string) (map[string]any, error)
	GetActivityDownloadURL(ctx context.Context, activityID, fileType string) (string, error)
	DeleteActivity(ctx context.Context, activityID string) error
	GetTrainingSchedule(ctx context.Context, startDate, endDate int) (map[string]any, error)
	GetTrainingSummary(ctx context.Context, startDate, endDate int) (map[string]any, error)
	UpdateTrainingSchedule(ctx context.Context, payload map[string]any) error
	EstimateWorkout(ctx context.Context, payload map[string]any) (map[string]any, error)
	CalculateWorkout(ctx context.Context, program map[string]any) (map[string]any, error)
	QueryPlans(ctx context.Context, statusList []int, startNo, limit int) ([]map[string]any, error)
	GetPlanDetail(ctx context.Context, planID string) (map[string]any, error)
	AddPlan(ctx context.Context, payload map[string]any) (string, error)
	UpdatePlan(ctx context.Context, payload map[string]any) error
	DeletePlans(ctx context.Context, planIDs []string) error
	ExecuteSubPlan(ctx context.Context, planID string, startDate int) error
	GetDashboard(ctx context.Context) (map[string]any, error)
	GetDashboardDetail(ctx context.Context) (map[string]any, error)
	GetPersonalRecords(ctx context.Context) (map[string]any, error)
	GetAnalysis(ctx context.Context) (map[string]any, error)
}

var _ API = (*coros.Client)(nil)

// DateToCoros converts a YYYY-MM-DD date string to the YYYYMMDD integer
// the COROS API uses.
func DateToCoros(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return t.Year()*10000 + int(t.Month())*100 + t.Day(), nil
}

// CorosToDate converts a YYYYMMDD integer back to YYYY-MM-DD. Returns ""
// for zero or out-of-shape input.
func CorosToDate(day int) string {
	if day < 10000101 || day > 99991231 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", day/10000, day/100%100, day%100)
}
