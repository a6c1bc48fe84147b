package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/synergy/internal/probe"
)

// Default configuration constants.
const (
	defaultRequests     = 200
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultMaxSize      = 13
	defaultTimeout      = 60 * time.Second
	defaultProbeTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		requests = flag.Int("requests", defaultRequests, "Number of solve requests")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		maxSize  = flag.Int("max-size", defaultMaxSize, "Largest team size to request")
		highTier = flag.Bool("high-tier", false, "Request the tier-weight bonus")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for probe output (default: probe_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Log every failed request")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := probe.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	config := &probe.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		MaxSize:  *maxSize,
		HighTier: *highTier,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1) //nolint:gocritic // cancel is called above
	}
}
