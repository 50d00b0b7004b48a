package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultMaxRetries is the default number of delivery attempts.
const DefaultMaxRetries = 3

// DefaultRetryWait is the default initial wait between retries.
const DefaultRetryWait = 1 * time.Second

// Client delivers JSON payloads to external endpoints with retries
// for transient failures. It backs the webhook and Slack notifiers.
type Client struct {
	client      *http.Client
	serviceName string
	maxRetries  int
	retryWait   time.Duration
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	Client      *http.Client
	ServiceName string
	MaxRetries  int
	RetryWait   time.Duration
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:      cfg.Client,
		serviceName: cfg.ServiceName,
		maxRetries:  cfg.MaxRetries,
		retryWait:   cfg.RetryWait,
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.serviceName == "" {
		c.serviceName = "webhook"
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryWait <= 0 {
		c.retryWait = DefaultRetryWait
	}

	return c
}

// Post delivers payload as JSON to url.
func (c *Client) Post(ctx context.Context, url string, payload any) error {
	return c.PostWithHeaders(ctx, url, payload, nil)
}

// PostWithHeaders delivers payload as JSON to url with custom headers.
// Transient failures (network errors, 429, 5xx) are retried with
// exponential backoff; other error statuses fail immediately with a
// *DeliveryError.
func (c *Client) PostWithHeaders(
	ctx context.Context,
	url string,
	payload any,
	headers map[string]string,
) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var lastErr error
	for attempt := range c.maxRetries {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries-1 {
				if err := c.wait(ctx, c.retryWait*time.Duration(1<<attempt)); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("%s delivery failed: %w", c.serviceName, err)
		}

		if shouldRetry(resp) && attempt < c.maxRetries-1 {
			wait := c.getRetryWait(resp, attempt)
			resp.Body.Close()
			lastErr = &DeliveryError{
				Service:    c.serviceName,
				StatusCode: resp.StatusCode,
				Endpoint:   url,
				Message:    http.StatusText(resp.StatusCode),
			}
			if err := c.wait(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode >= 400 {
			err := c.parseError(resp, url)
			resp.Body.Close()
			return err
		}

		resp.Body.Close()
		return nil
	}

	return lastErr
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// parseError parses an error response into a DeliveryError.
func (c *Client) parseError(resp *http.Response, url string) error {
	body, _ := io.ReadAll(resp.Body)

	delivErr := &DeliveryError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Endpoint:   url,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}

	// Try to parse error message from body
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			delivErr.Message = errResp.Message
		} else if errResp.Error != "" {
			delivErr.Message = errResp.Error
		}
	}

	if delivErr.Message == "" {
		delivErr.Message = http.StatusText(resp.StatusCode)
	}

	return delivErr
}

// getRetryWait calculates the wait time for a retry.
func (c *Client) getRetryWait(resp *http.Response, attempt int) time.Duration {
	// Check for Retry-After header
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff
	return c.retryWait * time.Duration(1<<attempt)
}

// shouldRetry reports whether a response status is transient.
func shouldRetry(resp *http.Response) bool {
	return resp.StatusCode == 429 || resp.StatusCode >= 500
}
