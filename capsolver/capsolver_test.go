package capsolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go-captcha"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", WithBaseURL(srv.URL))
}

func TestCreateTask(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/createTask", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"errorId": 0, "taskId": "task-123"})
	})

	res, err := c.CreateTask(context.Background(), captcha.ReCaptchaV2{
		WebsiteURL: "https://example.com",
		WebsiteKey: "site-key",
	})
	require.NoError(t, err)
	assert.Equal(t, captcha.TaskID("task-123"), res.TaskID)
	assert.Nil(t, res.Solution)

	assert.Equal(t, "test-key", got["clientKey"])
	task := got["task"].(map[string]any)
	assert.Equal(t, "ReCaptchaV2TaskProxyLess", task["type"])
	assert.Equal(t, "https://example.com", task["websiteURL"])
	assert.Equal(t, "site-key", task["websiteKey"])
}

func TestCreateTaskImmediateSolution(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errorId":  0,
			"taskId":   "img-1",
			"status":   "ready",
			"solution": map[string]any{"text": "x7k9q"},
		})
	})

	res, err := c.CreateTask(context.Background(), captcha.ImageToText{Body: "aGVsbG8="})
	require.NoError(t, err)
	require.NotNil(t, res.Solution)
	assert.Equal(t, "x7k9q", res.Solution.Text)
	assert.Equal(t, "x7k9q", res.Solution.Value())
}

func TestCreateTaskEmptyTaskID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"errorId": 0})
	})

	_, err := c.CreateTask(context.Background(), captcha.ReCaptchaV2{
		WebsiteURL: "https://example.com",
		WebsiteKey: "site-key",
	})
	var decodeErr *captcha.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.False(t, captcha.IsRetryable(err))
}

func TestCreateTaskAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errorId":          1,
			"errorCode":        "ERROR_ZERO_BALANCE",
			"errorDescription": "Your balance is insufficient",
		})
	})

	_, err := c.CreateTask(context.Background(), captcha.Turnstile{
		WebsiteURL: "https://example.com",
		WebsiteKey: "0x4AAA",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeZeroBalance, apiErr.Code)
	assert.False(t, captcha.IsRetryable(err))
	assert.False(t, captcha.ShouldRetryOperation(err))
}

func TestCreateTaskTypeSelection(t *testing.T) {
	proxy := &captcha.Proxy{Type: captcha.ProxyHTTP, Address: "1.2.3.4", Port: 8080}

	tests := []struct {
		name string
		task captcha.Task
		want string
	}{
		{"v2 enterprise", captcha.ReCaptchaV2{Enterprise: true}, "ReCaptchaV2EnterpriseTaskProxyLess"},
		{"v2 enterprise proxied", captcha.ReCaptchaV2{Enterprise: true, Proxy: proxy}, "ReCaptchaV2EnterpriseTask"},
		{"v2 proxy ignored", captcha.ReCaptchaV2{Proxy: proxy}, "ReCaptchaV2TaskProxyLess"},
		{"v3", captcha.ReCaptchaV3{}, "ReCaptchaV3TaskProxyLess"},
		{"v3 proxied", captcha.ReCaptchaV3{Proxy: proxy}, "ReCaptchaV3Task"},
		{"v3 enterprise", captcha.ReCaptchaV3{Enterprise: true}, "ReCaptchaV3EnterpriseTaskProxyLess"},
		{"v3 enterprise proxied", captcha.ReCaptchaV3{Enterprise: true, Proxy: proxy}, "ReCaptchaV3EnterpriseTask"},
		{"turnstile", captcha.Turnstile{}, "AntiTurnstileTaskProxyLess"},
		{"cloudflare", captcha.CloudflareChallenge{Proxy: proxy}, "AntiCloudflareTask"},
		{"image", captcha.ImageToText{Body: "aGVsbG8="}, "ImageToTextTask"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := convertTask(tt.task)
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Type)
		})
	}
}

func TestCreateTaskCloudflareWithoutProxy(t *testing.T) {
	c := New("test-key")
	_, err := c.CreateTask(context.Background(), captcha.CloudflareChallenge{
		WebsiteURL: "https://example.com",
	})
	require.ErrorIs(t, err, errProxyRequired)
	assert.False(t, captcha.IsRetryable(err))
}

func TestTurnstileMetadata(t *testing.T) {
	w, err := convertTask(captcha.Turnstile{
		WebsiteURL: "https://example.com",
		WebsiteKey: "0x4AAA",
		Action:     "login",
		CData:      "cdata-value",
	})
	require.NoError(t, err)
	require.NotNil(t, w.Metadata)
	assert.Equal(t, "login", w.Metadata.Action)
	assert.Equal(t, "cdata-value", w.Metadata.CData)

	w, err = convertTask(captcha.Turnstile{WebsiteURL: "https://example.com"})
	require.NoError(t, err)
	assert.Nil(t, w.Metadata)
}

func TestGetTaskResult(t *testing.T) {
	t.Run("processing", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/getTaskResult", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{"errorId": 0, "status": "processing"})
		})
		sol, err := c.GetTaskResult(context.Background(), "task-123")
		require.NoError(t, err)
		assert.Nil(t, sol)
	})

	t.Run("ready", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"errorId": 0,
				"status":  "ready",
				"solution": map[string]any{
					"gRecaptchaResponse": "the-token",
					"userAgent":          "Mozilla/5.0",
				},
			})
		})
		sol, err := c.GetTaskResult(context.Background(), "task-123")
		require.NoError(t, err)
		require.NotNil(t, sol)
		assert.Equal(t, "the-token", sol.Value())
		assert.Equal(t, "Mozilla/5.0", sol.UserAgent)
	})

	t.Run("ready without solution", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"errorId": 0, "status": "ready"})
		})
		_, err := c.GetTaskResult(context.Background(), "task-123")
		var decodeErr *captcha.DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("unsolvable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"errorId":   12,
				"errorCode": "ERROR_CAPTCHA_UNSOLVABLE",
			})
		})
		_, err := c.GetTaskResult(context.Background(), "task-123")
		require.Error(t, err)
		assert.False(t, captcha.IsRetryable(err))
		assert.True(t, captcha.ShouldRetryOperation(err))
	})
}

func TestTransportAndDecodeErrors(t *testing.T) {
	t.Run("http 502", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.GetTaskResult(context.Background(), "task-123")
		var transportErr *captcha.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.True(t, captcha.IsRetryable(err))
	})

	t.Run("garbage body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		})
		_, err := c.GetTaskResult(context.Background(), "task-123")
		var decodeErr *captcha.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.False(t, captcha.IsRetryable(err))
	})
}

func TestErrorCodeClassification(t *testing.T) {
	tests := []struct {
		code           ErrorCode
		retryable      bool
		retryOperation bool
	}{
		{CodeServiceUnavailable, true, true},
		{CodeRateLimit, true, true},
		{CodeIPBanned, true, true},
		{CodeKeyTempBlocked, true, true},
		{CodeTaskNotFound, true, true},
		{CodeTaskTimeout, false, true},
		{CodeCaptchaUnsolvable, false, true},
		{CodeSettlementFailed, false, true},
		{CodeZeroBalance, false, false},
		{CodeKeyDeniedAccess, false, false},
		{CodeInvalidTaskData, false, false},
		{CodeProxyBanned, false, false},
		{"ERROR_SOMETHING_NEW", false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.code.IsRetryable())
			assert.Equal(t, tt.retryOperation, tt.code.ShouldRetryOperation())
		})
	}
}

func TestBalance(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getBalance", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"errorId": 0, "balance": 42.5})
	})
	balance, err := c.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.5, balance)
}
