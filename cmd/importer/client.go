package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vehicle-locator/internal/models"
)

type reportClient struct {
	baseURL string
	http    *http.Client
}

func newReportClient(baseURL string, timeout time.Duration) *reportClient {
	return &reportClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type reportBody struct {
	Location models.Coordinate `json:"location"`
}

// Report posts the position in record to /report/:vehicle_id
func (c *reportClient) Report(ctx context.Context, record LocationRecord) error {
	payload, err := json.Marshal(reportBody{Location: record.Location()})
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/report/"+url.PathEscape(record.VehicleID), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

// Vehicle fetches the stored position of vehicleID
func (c *reportClient) Vehicle(ctx context.Context, vehicleID string) (*models.VehicleLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/vehicles/"+url.PathEscape(vehicleID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var location models.VehicleLocation
	if err := json.NewDecoder(resp.Body).Decode(&location); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle: %w", err)
	}
	return &location, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s %s: status %d: %s",
		resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
}

type mismatchError struct {
	vehicleID string
	expected  models.Coordinate
	actual    models.Coordinate
}

func (e *mismatchError) Error() string {
	return fmt.Sprintf("vehicle %q: expected %v, got %v", e.vehicleID, e.expected, e.actual)
}
