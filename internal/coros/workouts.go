package coros

import "context"

// EstimateWorkout previews training load for a workout without saving it.
// The payload carries {entity, program}; the response carries
// {distance, duration, trainingLoad, sets}.
//
// POST training/program/estimate
func (c *Client) EstimateWorkout(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var data map[string]any
	if err := c.post(ctx, "training/program/estimate", nil, payload, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// CalculateWorkout runs the full workout calculation, returning
// {planDistance, planDuration, planTrainingLoad, planElevGain, planPitch,
// exerciseBarChart}. The payload is a flat program object with exercises.
//
// POST training/program/calculate
func (c *Client) CalculateWorkout(ctx context.Context, program map[string]any) (map[string]any, error) {
	var data map[string]any
	if err := c.post(ctx, "training/program/calculate", nil, program, &data); err != nil {
		return nil, err
	}
	return data, nil
}
