package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/rango-go/internal/config"
	"github.com/yourorg/rango-go/internal/metrics"
)

// stubTracer replaces initTracer and reports whether shutdown ran.
func stubTracer(t *testing.T) *bool {
	t.Helper()
	var shutdown bool
	orig := initTracer
	initTracer = func(context.Context, config.Config) func() {
		return func() { shutdown = true }
	}
	t.Cleanup(func() { initTracer = orig })
	return &shutdown
}

func testConfig() config.Config {
	return config.Config{
		BaseURL:          "http://localhost/",
		Timeout:          5 * time.Second,
		MetricsNamespace: "rango_test",
	}
}

func TestRun_PassesArgs(t *testing.T) {
	shutdown := stubTracer(t)

	var got []string
	cmd := command{run: func(_ context.Context, a *app, args []string) error {
		require.NotNil(t, a.client)
		assert.Equal(t, os.Stdout, a.out)
		got = args
		return nil
	}}

	require.NoError(t, run(testConfig(), cmd, []string{"-chain", "ETH"}, prometheus.NewRegistry(), os.Stdout))
	assert.Equal(t, []string{"-chain", "ETH"}, got)
	assert.True(t, *shutdown)
}

func TestRun_CommandErrorFlushesTracer(t *testing.T) {
	shutdown := stubTracer(t)
	boom := errors.New("boom")

	cmd := command{run: func(context.Context, *app, []string) error { return boom }}

	err := run(testConfig(), cmd, nil, prometheus.NewRegistry(), os.Stdout)
	assert.ErrorIs(t, err, boom)
	assert.True(t, *shutdown, "tracer shutdown must run before the process exits")
}

func TestRun_StartupErrorFlushesTracer(t *testing.T) {
	shutdown := stubTracer(t)

	reg := prometheus.NewRegistry()
	_, err := metrics.NewCollector("rango_test", reg)
	require.NoError(t, err)

	called := false
	cmd := command{run: func(context.Context, *app, []string) error {
		called = true
		return nil
	}}

	err = run(testConfig(), cmd, nil, reg, os.Stdout)
	assert.ErrorContains(t, err, "register metrics")
	assert.False(t, called)
	assert.True(t, *shutdown)
}
