// Package capsolver implements the captcha.Provider contract on top of the
// Capsolver HTTP API (https://api.capsolver.com).
//
// Image recognition tasks are special-cased by the API: the answer comes back
// directly in the createTask response, so CreateTask surfaces it as an
// immediate solution and no polling happens.
package capsolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-captcha"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.capsolver.com"

	providerName = "capsolver"

	defaultHTTPTimeout = 10 * time.Second

	// Balance logs a warning below this many USD.
	balanceWarnLevel = 5.0
)

var errProxyRequired = errors.New("capsolver: CloudflareChallenge requires a static proxy")

// Client talks to the Capsolver API. It is safe for concurrent use.
//
// Client implements captcha.Provider[Solution]:
//
//	svc, err := captcha.NewService[Solution](capsolver.New(apiKey), captcha.BalancedConfig())
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to tune timeouts
// or route through a proxy.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New builds a Capsolver client with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the common response envelope. errorId != 0 marks an error;
// the remaining fields depend on the endpoint.
type apiResponse struct {
	ErrorID          int       `json:"errorId"`
	ErrorCode        ErrorCode `json:"errorCode"`
	ErrorDescription string    `json:"errorDescription"`

	TaskID   string    `json:"taskId"`
	Status   string    `json:"status"`
	Solution *Solution `json:"solution"`

	Balance float64 `json:"balance"`
}

func (r *apiResponse) err() error {
	if r.ErrorID == 0 {
		return nil
	}
	return &APIError{ErrorID: r.ErrorID, Code: r.ErrorCode, Description: r.ErrorDescription}
}

// CreateTask submits task and returns its id. When the API solves
// synchronously (status "ready" in the create response), the solution is
// returned alongside the id.
func (c *Client) CreateTask(ctx context.Context, task captcha.Task) (captcha.CreateResult[Solution], error) {
	var zero captcha.CreateResult[Solution]

	wt, err := convertTask(task)
	if err != nil {
		return zero, err
	}

	body := struct {
		ClientKey string   `json:"clientKey"`
		Task      wireTask `json:"task"`
	}{ClientKey: c.apiKey, Task: wt}

	resp, err := c.post(ctx, "createTask", body)
	if err != nil {
		return zero, err
	}
	if err := resp.err(); err != nil {
		return zero, err
	}

	if resp.Status == "ready" && resp.Solution != nil {
		return captcha.CreateResult[Solution]{
			TaskID:   captcha.TaskID(resp.TaskID),
			Solution: resp.Solution,
		}, nil
	}
	if resp.TaskID == "" {
		return zero, &captcha.DecodeError{
			Provider: providerName, Op: "createTask",
			Err: errors.New("empty task id"),
		}
	}
	return captcha.CreateResult[Solution]{TaskID: captcha.TaskID(resp.TaskID)}, nil
}

// GetTaskResult polls a created task. It returns (nil, nil) while the task is
// still processing.
func (c *Client) GetTaskResult(ctx context.Context, id captcha.TaskID) (*Solution, error) {
	body := struct {
		ClientKey string `json:"clientKey"`
		TaskID    string `json:"taskId"`
	}{ClientKey: c.apiKey, TaskID: id.String()}

	resp, err := c.post(ctx, "getTaskResult", body)
	if err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "ready":
		if resp.Solution == nil {
			return nil, &captcha.DecodeError{
				Provider: providerName, Op: "getTaskResult",
				Err: errors.New("status ready with no solution"),
			}
		}
		return resp.Solution, nil
	case "processing", "idle", "":
		return nil, nil
	default:
		return nil, &captcha.DecodeError{
			Provider: providerName, Op: "getTaskResult",
			Err: fmt.Errorf("unexpected task status %q", resp.Status),
		}
	}
}

// Balance returns the account balance in USD and warns when it is running
// low.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	body := struct {
		ClientKey string `json:"clientKey"`
	}{ClientKey: c.apiKey}

	resp, err := c.post(ctx, "getBalance", body)
	if err != nil {
		return 0, err
	}
	if err := resp.err(); err != nil {
		return 0, err
	}
	if resp.Balance < balanceWarnLevel {
		slog.Warn("capsolver balance is low", slog.Float64("balance", resp.Balance))
	}
	return resp.Balance, nil
}

func (c *Client) post(ctx context.Context, op string, body any) (*apiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("capsolver: encoding %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+op, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("capsolver: building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &captcha.TransportError{Provider: providerName, Op: op, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, &captcha.TransportError{
			Provider: providerName, Op: op,
			Err: fmt.Errorf("unexpected status %s", httpResp.Status),
		}
	}

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, &captcha.DecodeError{Provider: providerName, Op: op, Err: err}
	}
	return &resp, nil
}
