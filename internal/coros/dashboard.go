package coros

import "context"

// GetDashboard returns the main fitness dashboard summary
// ({summaryInfo: {recoveryPct, fitnessScores, staminaLevel, ...}}).
//
// GET dashboard/query
func (c *Client) GetDashboard(ctx context.Context) (map[string]any, error) {
	var data map[string]any
	if err := c.get(ctx, "dashboard/query", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetDashboardDetail returns detailed dashboard data including training
// load metrics (ati, cti, tiredRateNew) and the current week record.
//
// GET dashboard/detail/query
func (c *Client) GetDashboardDetail(ctx context.Context) (map[string]any, error) {
	var data map[string]any
	if err := c.get(ctx, "dashboard/detail/query", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetPersonalRecords returns personal records grouped by time period
// ({allRecordList: [{type, recordList}]}).
//
// GET dashboard/queryCycleRecord
func (c *Client) GetPersonalRecords(ctx context.Context) (map[string]any, error) {
	var data map[string]any
	if err := c.get(ctx, "dashboard/queryCycleRecord", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetAnalysis returns comprehensive training analysis
// ({dayList, weekList, t7dayList, sportStatistic, tlIntensity, ...}).
//
// GET analyse/query
func (c *Client) GetAnalysis(ctx context.Context) (map[string]any, error) {
	var data map[string]any
	if err := c.get(ctx, "analyse/query", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}
