package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "TRACKER_HTTP_TIMEOUT"
)

// Client is a simple HTTP client for the tracker API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateTask(ctx context.Context, req TaskCreateRequest) (TaskResponse, error) {
	var resp TaskResponse
	err := c.do(ctx, http.MethodPost, "/v1/tasks", nil, req, &resp)
	return resp, err
}

func (c *Client) GetTask(ctx context.Context, id int64) (TaskResponse, error) {
	var resp TaskResponse
	err := c.do(ctx, http.MethodGet, "/v1/tasks/"+formatID(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) UpdateTask(ctx context.Context, id int64, req TaskUpdateRequest) (TaskResponse, error) {
	var resp TaskResponse
	err := c.do(ctx, http.MethodPut, "/v1/tasks/"+formatID(id), nil, req, &resp)
	return resp, err
}

func (c *Client) ListTasks(ctx context.Context, query url.Values) ([]TaskResponse, error) {
	var resp []TaskResponse
	err := c.do(ctx, http.MethodGet, "/v1/tasks", query, nil, &resp)
	return resp, err
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/v1/tasks/"+formatID(id), nil, nil, nil)
}

func (c *Client) ToggleTaskDone(ctx context.Context, id int64) (TaskDoneResponse, error) {
	var resp TaskDoneResponse
	err := c.do(ctx, http.MethodPost, "/v1/tasks/"+formatID(id)+"/toggle", nil, nil, &resp)
	return resp, err
}

func (c *Client) ListSubtasks(ctx context.Context, taskID int64) ([]SubtaskResponse, error) {
	var resp []SubtaskResponse
	err := c.do(ctx, http.MethodGet, "/v1/tasks/"+formatID(taskID)+"/subtasks", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateSubtask(ctx context.Context, taskID int64, req SubtaskCreateRequest) ([]SubtaskResponse, error) {
	var resp []SubtaskResponse
	err := c.do(ctx, http.MethodPost, "/v1/tasks/"+formatID(taskID)+"/subtasks", nil, req, &resp)
	return resp, err
}

func (c *Client) SetSubtaskDone(ctx context.Context, id int64, req SubtaskDoneRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/subtasks/"+formatID(id)+"/done", nil, req, nil)
}

func (c *Client) MarkAllSubtasksDone(ctx context.Context, taskID int64) error {
	return c.do(ctx, http.MethodPost, "/v1/tasks/"+formatID(taskID)+"/subtasks/done-all", nil, nil, nil)
}

// Migrate asks the server to create the schema if absent.
func (c *Client) Migrate(ctx context.Context) (MigrateResponse, error) {
	var resp MigrateResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/migrate", nil, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Code
		apiErr.ErrorCode = errResp.ErrorCode
		apiErr.Message = errResp.Error
	}
	return apiErr
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
