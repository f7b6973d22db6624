package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/loglens/loglens/internal/model"
)

// ChartsPayload mirrors the /api/charts response of a running service.
type ChartsPayload struct {
	Granularity string                     `json:"granularity"`
	Traffic     model.TrafficSeries        `json:"traffic"`
	Addresses   model.FrequencyTable       `json:"addresses"`
	Software    model.CategoryDistribution `json:"software"`
}

// Client fetches aggregate views from a running loglens service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Charts fetches the three aggregate views at the given granularity.
func (c *Client) Charts(granularity model.Granularity) (*ChartsPayload, error) {
	var payload ChartsPayload
	path := "/api/charts?granularity=" + url.QueryEscape(string(granularity))
	if err := c.getJSON(path, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Summary fetches the record-set summary.
func (c *Client) Summary() (*model.Summary, error) {
	var summary model.Summary
	if err := c.getJSON("/api/logs", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Refresh asks the service to re-ingest its log directory.
func (c *Client) Refresh() (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.getJSON("/api/refresh", &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

func (c *Client) getJSON(path string, out any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("tui: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tui: %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tui: %s: decoding response: %w", path, err)
	}
	return nil
}
