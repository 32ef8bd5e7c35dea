package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// AdminPath is the admin API prefix appended to the base URL.
const AdminPath = "/ghost/api/admin"

// Client is an HTTP client for the newsletter admin API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// APIError is a non-2xx response decoded from the admin error envelope.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("API error (%d): %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// buildRequest creates an HTTP request with proper headers
func (c *Client) buildRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+AdminPath+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	// Only set Authorization header if API key is provided
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}

// doRequest performs an HTTP request and handles the response
func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Errors []struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"errors"`
		}
		if err := sonic.ConfigStd.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
			apiErr.Type = envelope.Errors[0].Type
			apiErr.Message = envelope.Errors[0].Message
			return apiErr
		}
		// If JSON parsing failed, return the raw body
		apiErr.Message = string(body)
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if result != nil && len(body) > 0 {
		if err := sonic.ConfigStd.Unmarshal(body, result); err != nil {
			return errors.Wrap(err, "failed to parse response")
		}
	}

	return nil
}

// doJSONRequest performs a JSON request (POST, PUT, PATCH)
func (c *Client) doJSONRequest(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := sonic.ConfigStd.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := c.buildRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	return c.doRequest(req, result)
}

func (c *Client) doGetRequest(ctx context.Context, path string, result any) error {
	req, err := c.buildRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	return c.doRequest(req, result)
}

func (c *Client) doDeleteRequest(ctx context.Context, path string) error {
	req, err := c.buildRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return c.doRequest(req, nil)
}
