package probe

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/synergy/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		logFile = "probe_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithOutput(io.MultiWriter(os.Stdout, file))); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the probe.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Synergy Probe
=============

Sends concurrent solve requests to a running synergy service and checks
every response for consistency: team size, trait breakdown and evaluation.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of solve requests (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -max-size int
        Largest team size to request; values above 11 test clamping (default 13)
  -high-tier
        Request the tier-weight bonus
  -timeout duration
        HTTP request timeout (default 60s)
  -log string
        Log file for probe output (default: probe_TIMESTAMP.log)
  -verbose
        Log every failed request
  -help
        Show this help message

The service rate limits requests (10 per 5 seconds by default); rejected
requests are counted separately and do not fail the probe.
`)
}
