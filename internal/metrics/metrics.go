// Package metrics exposes Prometheus instrumentation for aggregator API calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the client's Prometheus collectors. A nil *Collector is
// valid and records nothing.
type Collector struct {
	requests       *prometheus.HistogramVec
	statusCodes    *prometheus.CounterVec
	decodeFailures *prometheus.CounterVec
}

// NewCollector creates the collectors under namespace and registers them with reg.
// A nil reg leaves them unregistered.
func NewCollector(namespace string, reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_requests",
				Help:      "Time taken by aggregator API requests",
				Buckets:   []float64{.005, .01, .025, .05, .075, .1, .15, .2, .25, .5, 1, 2.5, 5, 10, 15, 30},
			},
			[]string{"endpoint", "error"},
		),
		statusCodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_responses_total",
				Help:      "Aggregator API responses by status code",
			},
			[]string{"endpoint", "code"},
		),
		decodeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_failures_total",
				Help:      "Response bodies that could not be decoded, by failure kind",
			},
			[]string{"endpoint", "kind"},
		),
	}

	if reg != nil {
		for _, col := range []prometheus.Collector{c.requests, c.statusCodes, c.decodeFailures} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// CollectRequest records the duration of one request.
func (c *Collector) CollectRequest(endpoint string, err error, start time.Time) {
	if c == nil {
		return
	}
	c.requests.
		WithLabelValues(endpoint, errLabelValue(err)).
		Observe(time.Since(start).Seconds())
}

// CollectStatus counts a response status code.
func (c *Collector) CollectStatus(endpoint string, code int) {
	if c == nil {
		return
	}
	c.statusCodes.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

// CollectDecodeFailure counts a body that failed to decode.
func (c *Collector) CollectDecodeFailure(endpoint, kind string) {
	if c == nil {
		return
	}
	c.decodeFailures.WithLabelValues(endpoint, kind).Inc()
}

func errLabelValue(err error) string {
	if err != nil {
		return "true"
	}
	return "false"
}
