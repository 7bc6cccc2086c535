package metrics

import (
	"context"
	"net/http"
	"time"
)

type endpointKey struct{}

// WithEndpoint tags ctx with the endpoint name used as a metric label.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

// EndpointFrom returns the endpoint set by WithEndpoint, or "unknown".
func EndpointFrom(ctx context.Context) string {
	if endpoint, ok := ctx.Value(endpointKey{}).(string); ok && endpoint != "" {
		return endpoint
	}
	return "unknown"
}

// RequestWatcher is an http.RoundTripper that times every request passing
// through it.
type RequestWatcher struct {
	next      http.RoundTripper
	collector *Collector
}

// NewRequestWatcher wraps next; a nil next means http.DefaultTransport.
func NewRequestWatcher(next http.RoundTripper, collector *Collector) *RequestWatcher {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RequestWatcher{next: next, collector: collector}
}

func (m *RequestWatcher) RoundTrip(r *http.Request) (*http.Response, error) {
	endpoint := EndpointFrom(r.Context())

	var err error
	defer func(start time.Time) {
		m.collector.CollectRequest(endpoint, err, start)
	}(time.Now())

	resp, err := m.next.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	m.collector.CollectStatus(endpoint, resp.StatusCode)
	return resp, nil
}
