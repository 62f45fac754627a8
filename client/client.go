package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"productconsole/logger"
	"productconsole/utils"
)

// DefaultBaseURL is the backend product service used when Options.BaseURL is empty.
const DefaultBaseURL = "http://localhost:8080/api"

const (
	serviceTokenSubject = "console"
	serviceTokenTTL     = 5 * time.Minute
)

// DefaultMaskedDeleteStatuses lists the delete failures reported as success when
// Options.MaskedDeleteStatuses is nil.
var DefaultMaskedDeleteStatuses = []int{http.StatusInternalServerError}

var maskedDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "console_masked_deletes_total",
	Help: "Delete calls whose backend failure was reported to the user as success.",
}, []string{"resource", "status"})

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration
	// TokenSecret signs a bearer service token on every request when non-empty.
	TokenSecret string
	// MaskedDeleteStatuses lists statuses that DeleteProduct and DeleteProductFile treat as success.
	// Nil selects DefaultMaskedDeleteStatuses; an empty slice disables masking.
	MaskedDeleteStatuses []int
	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
}

// Client talks to the backend product service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSecret []byte
	masked      map[int]struct{}
}

// New builds a Client from opts.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   opts.Timeout,
		}
	}

	statuses := opts.MaskedDeleteStatuses
	if statuses == nil {
		statuses = DefaultMaskedDeleteStatuses
	}
	masked := make(map[int]struct{}, len(statuses))
	for _, status := range statuses {
		masked[status] = struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		tokenSecret: []byte(opts.TokenSecret),
		masked:      masked,
	}
}

// BaseURL returns the backend base the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if len(c.tokenSecret) > 0 {
		token, err := utils.GenerateServiceToken(c.tokenSecret, serviceTokenSubject, serviceTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("client: sign service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends req and decodes a JSON body into out when out is non-nil.
// path is the request path relative to the base URL, used in logs and errors.
func (c *Client) do(req *http.Request, path string, out interface{}) error {
	method := req.Method
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"method": method,
			"path":   path,
		}).Error("API request failed: %v", err)
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: %s %s: read body: %w", method, path, err)
	}

	fields := map[string]interface{}{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.WithFields(fields).Warn("API error response")
		return newAPIError(method, path, resp, body)
	}
	logger.WithFields(fields).Debug("API response")

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("client: %s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: %s %s: encode request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

// maskDelete swallows err when it carries one of the masked statuses.
func (c *Client) maskDelete(resource, id string, err error) error {
	if err == nil {
		return nil
	}
	for status := range c.masked {
		if IsStatus(err, status) {
			maskedDeletes.WithLabelValues(resource, fmt.Sprint(status)).Inc()
			logger.WithFields(map[string]interface{}{
				"resource": resource,
				"id":       id,
				"status":   status,
			}).Warn("Delete failed on backend, reporting success")
			return nil
		}
	}
	return err
}
