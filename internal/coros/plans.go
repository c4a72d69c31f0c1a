package coros

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// QueryPlans lists training plan templates. statusList values: 0=draft,
// 1=active.
//
// POST training/plan/query
func (c *Client) QueryPlans(ctx context.Context, statusList []int, startNo, limit int) ([]map[string]any, error) {
	if statusList == nil {
		statusList = []int{0}
	}
	if limit == 0 {
		limit = 10
	}
	body := map[string]any{
		"name":       "",
		"statusList": statusList,
		"startNo":    startNo,
		"limitSize":  limit,
	}

	var data []map[string]any
	if err := c.post(ctx, "training/plan/query", nil, body, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetPlanDetail returns a full plan with all workouts and exercises.
//
// GET training/plan/detail
func (c *Client) GetPlanDetail(ctx context.Context, planID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("id", planID)
	params.Set("supportRestExercise", "1")

	var data map[string]any
	if err := c.get(ctx, "training/plan/detail", params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// AddPlan creates a new training plan template and returns its id.
//
// POST training/plan/add
func (c *Client) AddPlan(ctx context.Context, payload map[string]any) (string, error) {
	var data json.RawMessage
	if err := c.post(ctx, "training/plan/add", nil, payload, &data); err != nil {
		return "", err
	}
	// The id arrives either as a JSON string or a bare number.
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return id, nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		return strconv.FormatInt(n, 10), nil
	}
	return "", fmt.Errorf("coros: plan/add returned unexpected id payload: %s", data)
}

// UpdatePlan modifies an existing plan template.
//
// POST training/plan/update
func (c *Client) UpdatePlan(ctx context.Context, payload map[string]any) error {
	return c.post(ctx, "training/plan/update", nil, payload, nil)
}

// DeletePlans deletes one or more plan templates.
//
// POST training/plan/delete
func (c *Client) DeletePlans(ctx context.Context, planIDs []string) error {
	return c.post(ctx, "training/plan/delete", nil, planIDs, nil)
}

// ExecuteSubPlan applies a plan template to the calendar starting on the
// given YYYYMMDD date.
//
// POST training/schedule/executeSubPlan
func (c *Client) ExecuteSubPlan(ctx context.Context, planID string, startDate int) error {
	params := url.Values{}
	params.Set("startDay", strconv.Itoa(startDate))
	params.Set("subPlanId", planID)
	return c.post(ctx, "training/schedule/executeSubPlan", params, map[string]any{}, nil)
}
