package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/annoq/consensus-review/internal/model"
)

// Result page size requested from list endpoints
const defaultPageSize = 100

// Client talks to an annotation server over its REST API. A zero token means
// anonymous access; otherwise the token is attached to every request.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the given server base URL
func New(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the normalized server base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WebURL joins a navigation path onto the server's web root
func (c *Client) WebURL(path string) string {
	return c.baseURL + path
}

// apiURL joins a path onto the server's API root
func (c *Client) apiURL(path string) string {
	return c.baseURL + "/api" + path
}

// send performs one request and returns the raw response body. Non-2xx
// responses come back as *APIError with the body retained.
func (c *Client) send(ctx context.Context, method, url string, body any) ([]byte, error) {
	reqID := uuid.New().String()
	start := time.Now()

	var reader io.Reader
	var contentLength int
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("api.http.encode_error", "req_id", reqID, "error", err)
			return nil, fmt.Errorf("encode json: %w", err)
		}
		reader = bytes.NewReader(bs)
		contentLength = len(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.logger.Error("api.http.build_request_error", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	c.logger.Info("api.http.request",
		"req_id", reqID,
		"method", method,
		"url", url,
		"content_length", contentLength,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("api.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("api.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

// getJSON performs a GET and decodes the response into out
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	raw, err := c.send(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// jobsPage is one page of the jobs list endpoint
type jobsPage struct {
	Count   int         `json:"count"`
	Next    string      `json:"next"`
	Results []model.Job `json:"results"`
}

// Jobs returns all jobs of a task, following result pages
func (c *Client) Jobs(ctx context.Context, taskID int) ([]model.Job, error) {
	url := c.apiURL(fmt.Sprintf("/jobs?task_id=%d&page_size=%d", taskID, defaultPageSize))

	var jobs []model.Job
	for url != "" {
		var page jobsPage
		if err := c.getJSON(ctx, url, &page); err != nil {
			return nil, fmt.Errorf("list jobs for task %d: %w", taskID, err)
		}
		jobs = append(jobs, page.Results...)
		url = page.Next
	}
	return jobs, nil
}

// reportsPage is one page of the consensus reports list endpoint
type reportsPage struct {
	Count   int                     `json:"count"`
	Next    string                  `json:"next"`
	Results []model.ConsensusReport `json:"results"`
}

// ConsensusReports returns all consensus reports of a task
func (c *Client) ConsensusReports(ctx context.Context, taskID int) ([]model.ConsensusReport, error) {
	url := c.apiURL(fmt.Sprintf("/consensus/reports?task_id=%d&page_size=%d", taskID, defaultPageSize))

	var reports []model.ConsensusReport
	for url != "" {
		var page reportsPage
		if err := c.getJSON(ctx, url, &page); err != nil {
			return nil, fmt.Errorf("list consensus reports for task %d: %w", taskID, err)
		}
		reports = append(reports, page.Results...)
		url = page.Next
	}
	return reports, nil
}

// settingsPage is one page of the consensus settings list endpoint
type settingsPage struct {
	Count   int                       `json:"count"`
	Results []model.ConsensusSettings `json:"results"`
}

// ConsensusSettings returns the task's consensus settings entity, or
// ErrNoSettings when the task has none
func (c *Client) ConsensusSettings(ctx context.Context, taskID int) (model.ConsensusSettings, error) {
	url := c.apiURL(fmt.Sprintf("/consensus/settings?task_id=%d", taskID))

	var page settingsPage
	if err := c.getJSON(ctx, url, &page); err != nil {
		return model.ConsensusSettings{}, fmt.Errorf("fetch consensus settings for task %d: %w", taskID, err)
	}
	if len(page.Results) == 0 {
		return model.ConsensusSettings{}, fmt.Errorf("task %d: %w", taskID, ErrNoSettings)
	}
	return page.Results[0], nil
}

// UpdateConsensusSettings persists one settings update and returns the
// canonical server snapshot. Exactly one request is sent per call; the
// caller replaces its settings state with the returned value.
func (c *Client) UpdateConsensusSettings(ctx context.Context, settingsID int, update model.ConsensusSettingsUpdate) (model.ConsensusSettings, error) {
	url := c.apiURL(fmt.Sprintf("/consensus/settings/%d", settingsID))

	raw, err := c.send(ctx, http.MethodPatch, url, update)
	if err != nil {
		return model.ConsensusSettings{}, fmt.Errorf("update consensus settings %d: %w", settingsID, err)
	}

	var settings model.ConsensusSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return model.ConsensusSettings{}, fmt.Errorf("decode updated settings: %w", err)
	}
	return settings, nil
}

// ConfigureTask applies a consensus configuration snapshot to a task
func (c *Client) ConfigureTask(ctx context.Context, taskID int, cfg model.ConsensusConfiguration) error {
	url := c.apiURL(fmt.Sprintf("/tasks/%d", taskID))

	if _, err := c.send(ctx, http.MethodPatch, url, cfg); err != nil {
		return fmt.Errorf("configure consensus for task %d: %w", taskID, err)
	}
	return nil
}

// mergeRequest is the body of the consensus merge endpoint
type mergeRequest struct {
	TaskID int `json:"task_id"`
}

// CreateMerge asks the server to merge the task's consensus replicas. Fresh
// reports become available once the server finishes.
func (c *Client) CreateMerge(ctx context.Context, taskID int) error {
	url := c.apiURL("/consensus/merges")

	if _, err := c.send(ctx, http.MethodPost, url, mergeRequest{TaskID: taskID}); err != nil {
		return fmt.Errorf("request consensus merge for task %d: %w", taskID, err)
	}
	return nil
}

// ReportData returns the raw document of one consensus report
func (c *Client) ReportData(ctx context.Context, reportID int) ([]byte, error) {
	url := c.apiURL(model.ReportDataPath(reportID))

	raw, err := c.send(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch report %d data: %w", reportID, err)
	}
	return raw, nil
}
