// Package main provides a standalone health check command for container probes and scripts
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence"
	"github.com/alchemorsel/recipebox/pkg/healthcheck"
	"github.com/alchemorsel/recipebox/pkg/logger"
	"go.uber.org/zap"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// Options holds command-line configuration
type Options struct {
	URL          string
	Timeout      time.Duration
	OutputFormat string
	ConfigPath   string
	LocalCheck   bool
	AllowDegrade bool
}

func main() {
	os.Exit(run(parseFlags()))
}

func parseFlags() Options {
	opts := Options{}

	flag.StringVar(&opts.URL, "url", "", "Health endpoint URL (default http://localhost:<server.port>/health/live)")
	flag.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json")
	flag.StringVar(&opts.ConfigPath, "config", os.Getenv("RECIPEBOX_CONFIG"), "Configuration file path")
	flag.BoolVar(&opts.LocalCheck, "local", false, "Check the database directly instead of calling the server")
	flag.BoolVar(&opts.AllowDegrade, "allow-degraded", true, "Treat a degraded result as success")
	flag.Parse()

	return opts
}

func run(opts Options) int {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return exitCodeError
	}

	log, err := logger.New(logger.Config{Level: "error", Format: "console", Service: "health-check"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return exitCodeError
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	hc := healthcheck.New(cfg.App.Version, log)
	hc.SetCacheTTL(0)

	if opts.LocalCheck {
		repos, err := persistence.Open(ctx, cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
			return exitCodeFailure
		}
		defer func() {
			if err := repos.Close(); err != nil {
				log.Warn("Failed to close database", zap.Error(err))
			}
		}()
		hc.Register("database", healthcheck.NewPingChecker("database", repos.Pinger))
	} else {
		url := opts.URL
		if url == "" {
			url = fmt.Sprintf("http://localhost:%d/health/live", cfg.Server.Port)
		}
		hc.Register("api", healthcheck.NewExternalServiceChecker("api", url, opts.Timeout))
	}

	response := hc.Check(ctx)
	if err := printResponse(response, opts.OutputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "failed to print result: %v\n", err)
		return exitCodeError
	}

	switch response.Status {
	case healthcheck.StatusHealthy:
		return exitCodeSuccess
	case healthcheck.StatusDegraded:
		if opts.AllowDegrade {
			return exitCodeSuccess
		}
	}
	return exitCodeFailure
}

func printResponse(response healthcheck.Response, format string) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	fmt.Printf("status: %s\n", response.Status)
	for _, check := range response.Checks {
		line := fmt.Sprintf("  %s: %s (%dms)", check.Name, check.Status, check.Duration.Milliseconds())
		if check.Message != "" {
			line += " - " + check.Message
		}
		fmt.Println(line)
	}
	return nil
}
