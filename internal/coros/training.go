package coros

import (
	"context"
	"net/url"
	"strconv"
)

// Version object status codes for training/schedule/update.
const (
	VersionNew        = 1
	VersionMoveUpdate = 2
	VersionDelete     = 3
)

// GetTrainingSchedule returns the training plan for a date range
// ({id, name, pbVersion, maxIdInPlan, entities, programs,
// sportDatasNotInPlan, weekStages, eventTags}). Dates are YYYYMMDD.
//
// GET training/schedule/query
func (c *Client) GetTrainingSchedule(ctx context.Context, startDate, endDate int) (map[string]any, error) {
	params := url.Values{}
	params.Set("startDate", strconv.Itoa(startDate))
	params.Set("endDate", strconv.Itoa(endDate))
	params.Set("supportRestExercise", "1")

	var data map[string]any
	if err := c.get(ctx, "training/schedule/query", params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetTrainingSummary returns actual vs planned training totals
// ({todayTrainingSum, weekTrains, dayTrainSums}). Dates are YYYYMMDD.
//
// GET training/schedule/querysum
func (c *Client) GetTrainingSummary(ctx context.Context, startDate, endDate int) (map[string]any, error) {
	params := url.Values{}
	params.Set("startDate", strconv.Itoa(startDate))
	params.Set("endDate", strconv.Itoa(endDate))

	var data map[string]any
	if err := c.get(ctx, "training/schedule/querysum", params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// UpdateTrainingSchedule creates, moves, or deletes scheduled workouts. The
// payload carries {pbVersion, entities, programs, versionObjects}.
//
// POST training/schedule/update
func (c *Client) UpdateTrainingSchedule(ctx context.Context, payload map[string]any) error {
	return c.post(ctx, "training/schedule/update", nil, payload, nil)
}
