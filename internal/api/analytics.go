package api

import (
	"context"
	"fmt"
	"net/url"
)

func analyticsQuery(startDate, endDate string) string {
	params := url.Values{}
	if startDate != "" {
		params.Set("startDate", startDate)
	}
	if endDate != "" {
		params.Set("endDate", endDate)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// Analytics returns per-day activity buckets for an agent. Dates are
// YYYY-MM-DD; empty bounds leave the window open.
func (c *Client) Analytics(ctx context.Context, agentID, startDate, endDate string) ([]AnalyticsPoint, error) {
	var resp struct {
		Points []AnalyticsPoint `json:"analytics"`
	}
	path := "/analytics/" + agentID + analyticsQuery(startDate, endDate)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	return resp.Points, nil
}

// Summary returns aggregate analytics for an agent over a date window.
func (c *Client) Summary(ctx context.Context, agentID, startDate, endDate string) (*AnalyticsSummary, error) {
	var resp AnalyticsSummary
	path := "/analytics/" + agentID + "/summary" + analyticsQuery(startDate, endDate)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	return &resp, nil
}
