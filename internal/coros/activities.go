package coros

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Export file types for activity downloads.
const (
	FileCSV = "0"
	FileGPX = "1"
	FileKML = "2"
	FileTCX = "3"
	FileFIT = "4"
)

// ActivityQuery filters GetActivities. Dates are YYYYMMDD integers; zero
// means unbounded.
type ActivityQuery struct {
	Page     int
	Size     int
	StartDay int
	EndDay   int
	ModeList string
}

// GetActivities returns a page of the activity list as a raw map
// ({count, totalPage, pageNumber, dataList}).
//
// GET activity/query
func (c *Client) GetActivities(ctx context.Context, q ActivityQuery) (map[string]any, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Size == 0 {
		q.Size = 20
	}
	params := url.Values{}
	params.Set("size", strconv.Itoa(q.Size))
	params.Set("pageNumber", strconv.Itoa(q.Page))
	if q.StartDay != 0 {
		params.Set("startDay", strconv.Itoa(q.StartDay))
	}
	if q.EndDay != 0 {
		params.Set("endDay", strconv.Itoa(q.EndDay))
	}
	if q.ModeList != "" {
		params.Set("modeList", q.ModeList)
	}

	var data map[string]any
	if err := c.get(ctx, "activity/query", params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetActivityDetail returns detailed activity data (summary, laps, zones,
// weather, graphs).
//
// POST activity/detail/query
func (c *Client) GetActivityDetail(ctx context.Context, activityID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("labelId", activityID)
	params.Set("sportType", "100")

	var data map[string]any
	if err := c.post(ctx, "activity/detail/query", params, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetActivityDownloadURL returns a temporary URL for an activity file
// export in the given file type (FileFIT etc.).
//
// POST activity/detail/download
func (c *Client) GetActivityDownloadURL(ctx context.Context, activityID, fileType string) (string, error) {
	params := url.Values{}
	params.Set("labelId", activityID)
	params.Set("sportType", "100")
	params.Set("fileType", fileType)

	var data struct {
		FileURL string `json:"fileUrl"`
	}
	if err := c.post(ctx, "activity/detail/download", params, nil, &data); err != nil {
		return "", err
	}
	if data.FileURL == "" {
		return "", fmt.Errorf("coros: download response missing fileUrl")
	}
	return data.FileURL, nil
}

// DeleteActivity removes an activity.
//
// GET activity/delete
func (c *Client) DeleteActivity(ctx context.Context, activityID string) error {
	params := url.Values{}
	params.Set("labelId", activityID)
	return c.get(ctx, "activity/delete", params, &struct{}{})
}
