package remote

import (
	"bytes"
	"context"
	"ebd_gestao/internal/config"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrFunctionsNotConfigured = errors.New("remote functions url not configured")

const maxErrorBody = 4 << 10

// FunctionError is a failed remote procedure call. Body keeps the raw
// response so callers can extract the provider message from it.
type FunctionError struct {
	Name       string
	StatusCode int
	Body       string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("edge function %s returned %d: %s", e.Name, e.StatusCode, e.Body)
}

// Client invokes named edge functions: POST {url}/{name} with a bearer key.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(cfg config.FunctionsConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		key:     strings.TrimSpace(cfg.Key),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type envelope struct {
	Success *bool `json:"success"`
}

// Invoke posts in as JSON and decodes the response into out. A non-2xx status,
// or a 2xx body with "success": false, is returned as *FunctionError.
func (c *Client) Invoke(ctx context.Context, name string, in, out any) error {
	if c == nil || c.baseURL == "" {
		return ErrFunctionsNotConfigured
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+name, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("apikey", c.key)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("[remote][client] call failed", zap.String("function", name), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	c.log.Debug("[remote][client] call done",
		zap.String("function", name),
		zap.Int("status", resp.StatusCode),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &FunctionError{Name: name, StatusCode: resp.StatusCode, Body: truncate(body)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Success != nil && !*env.Success {
		return &FunctionError{Name: name, StatusCode: resp.StatusCode, Body: truncate(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
