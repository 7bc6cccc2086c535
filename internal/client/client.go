// Package client is an HTTP client for the aggregator's basic REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourorg/rango-go/internal/config"
	"github.com/yourorg/rango-go/internal/metrics"
	"github.com/yourorg/rango-go/internal/otel"
)

// DefaultBaseURL is used when the configuration leaves the base URL empty.
const DefaultBaseURL = "https://api.rango.exchange/"

// maxErrorBody caps how much of a failed response is kept in HTTPError.
const maxErrorBody = 4 << 10

// HTTPError is returned when the API answers with a non-2xx status.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: API error: status %d, body: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client talks to the aggregator. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	log        *logrus.Entry
	metrics    *metrics.Collector
	tracer     trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The client is copied, not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			copied := *hc
			c.httpClient = &copied
		}
	}
}

// WithLogger sets the log entry used for request logging.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Client) {
		if entry != nil {
			c.log = entry
		}
	}
}

// WithMetrics instruments the transport with collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// New creates a client for cfg.BaseURL, authenticating with cfg.APIKey when set.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	rawURL := cfg.BaseURL
	if rawURL == "" {
		rawURL = DefaultBaseURL
	}
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing base URL %q: %w", rawURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", rawURL)
	}

	c := &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logrus.WithField("component", "rango-client"),
		tracer:     otel.Tracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics != nil {
		c.httpClient.Transport = metrics.NewRequestWatcher(c.httpClient.Transport, c.metrics)
	}
	return c, nil
}

// authenticatedURL resolves path against the base URL and appends the API key.
func (c *Client) authenticatedURL(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if c.apiKey != "" {
		q.Set("apiKey", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, payload any) (body []byte, err error) {
	ctx, span := c.tracer.Start(ctx, "rango."+endpoint, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("rango.endpoint", endpoint),
	))
	defer func() {
		otel.RecordError(ctx, err)
		span.End()
	}()
	ctx = metrics.WithEndpoint(ctx, endpoint)

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error encoding %s request: %w", endpoint, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.authenticatedURL(path, query), reqBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{"endpoint": endpoint, "method": method}).Debug("Calling aggregator API")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		return nil, &HTTPError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(data)}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", endpoint, err)
	}
	c.log.WithFields(logrus.Fields{"endpoint": endpoint, "bytes": len(body)}).Debug("Received aggregator response")
	return body, nil
}

// getJSON performs a GET and decodes a flat response into out.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	body, err := c.do(ctx, endpoint, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.CollectDecodeFailure(endpoint, "json")
		return fmt.Errorf("error decoding %s response: %w", endpoint, err)
	}
	return nil
}
