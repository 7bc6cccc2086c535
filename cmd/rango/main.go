// Package main is a command line client for the swap aggregator's basic API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/rango-go/internal/client"
	"github.com/yourorg/rango-go/internal/config"
	"github.com/yourorg/rango-go/internal/metrics"
	"github.com/yourorg/rango-go/internal/otel"
)

// command runs one subcommand with its own flag set.
type command struct {
	usage string
	run   func(ctx context.Context, app *app, args []string) error
}

var commands = map[string]command{
	"meta":     {"meta [-chain NAME]", runMeta},
	"quote":    {"quote -from ASSET -to ASSET -amount N", runQuote},
	"swap":     {"swap -from ASSET -to ASSET -amount N -from-address A -to-address B [-slippage P]", runSwap},
	"approval": {"approval -request ID -tx HASH", runApproval},
	"status":   {"status -request ID -tx HASH [-wait]", runStatus},
	"balance":  {"balance -chain NAME -address A | CHAIN:ADDRESS...", runBalance},
	"report":   {"report -request ID -reason TEXT", runReport},
	"decode":   {"decode [-tx] [FILE]", runDecode},
}

// app bundles what every subcommand needs.
type app struct {
	client *client.Client
	out    *os.File
}

// initTracer is swapped out in tests.
var initTracer = otel.InitTracer

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}
	setupLogging(cfg)

	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address while the command runs")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	if err := run(cfg, cmd, flag.Args()[1:], prometheus.DefaultRegisterer, os.Stdout); err != nil {
		logCommandError(err)
		os.Exit(1)
	}
}

// run executes cmd with tracing and metrics in place. Errors are returned
// rather than exiting so the tracer is flushed before the process ends.
func run(cfg config.Config, cmd command, args []string, reg prometheus.Registerer, out *os.File) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := initTracer(ctx, cfg)
	defer shutdown()

	collector, err := metrics.NewCollector(cfg.MetricsNamespace, reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	c, err := client.New(cfg,
		client.WithMetrics(collector),
		client.WithLogger(logrus.WithField("component", "rango-client")),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	return cmd.run(ctx, &app{client: c, out: out}, args)
}

func logCommandError(err error) {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		logrus.WithFields(logrus.Fields{
			"endpoint": httpErr.Endpoint,
			"status":   httpErr.StatusCode,
		}).Error(httpErr.Body)
		return
	}
	logrus.WithError(err).Error("Command failed")
}

// setupLogging configures logrus from LOG_FORMAT and LOG_LEVEL.
func setupLogging(cfg config.Config) {
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	logrus.SetOutput(os.Stderr)

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logrus.Infof("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Error("Metrics server stopped")
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rango [-metrics-addr ADDR] COMMAND [flags]\n\ncommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
	fmt.Fprintf(os.Stderr, "\nassets are written BLOCKCHAIN.SYMBOL or BLOCKCHAIN.SYMBOL--ADDRESS\n")
}
