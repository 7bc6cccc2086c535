package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewCollector("rango", reg)
	require.NoError(t, err)

	_, err = NewCollector("rango", reg)
	assert.Error(t, err, "duplicate registration should fail")
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.CollectRequest("swap", nil, time.Now())
		c.CollectStatus("swap", 200)
		c.CollectDecodeFailure("swap", "missing_field")
	})
}

func TestCollector_DecodeFailures(t *testing.T) {
	c, err := NewCollector("rango", nil)
	require.NoError(t, err)

	c.CollectDecodeFailure("swap", "unknown_variant")
	c.CollectDecodeFailure("swap", "unknown_variant")
	c.CollectDecodeFailure("swap", "missing_field")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.decodeFailures.WithLabelValues("swap", "unknown_variant")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.decodeFailures.WithLabelValues("swap", "missing_field")))
}

func TestEndpointFrom(t *testing.T) {
	assert.Equal(t, "unknown", EndpointFrom(context.Background()))
	assert.Equal(t, "quote", EndpointFrom(WithEndpoint(context.Background(), "quote")))
}

func TestRequestWatcher_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c, err := NewCollector("rango", nil)
	require.NoError(t, err)
	client := &http.Client{Transport: NewRequestWatcher(nil, c)}

	req, err := http.NewRequestWithContext(WithEndpoint(context.Background(), "meta"), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.statusCodes.WithLabelValues("meta", "418")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.requests))
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestRequestWatcher_TransportError(t *testing.T) {
	c, err := NewCollector("rango", nil)
	require.NoError(t, err)
	client := &http.Client{Transport: NewRequestWatcher(failingTransport{}, c)}

	req, err := http.NewRequestWithContext(WithEndpoint(context.Background(), "status"), http.MethodGet, "http://example.invalid", nil)
	require.NoError(t, err)
	_, err = client.Do(req)
	require.Error(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(c.requests))
	assert.Equal(t, 0, testutil.CollectAndCount(c.statusCodes))
}
