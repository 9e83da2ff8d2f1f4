// Package loadtest drives concurrent search traffic against a running
// trailboard server and verifies every page it gets back.
package loadtest

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/trailboard/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends both the structured logger and the progress log to
// the console and to logFile. If logFile is empty, a timestamped filename
// is generated. The returned function closes the file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "loadtest_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	if err := logger.Init(logger.WithOutput(multiWriter)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file.Close, nil
}

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	os.Stdout.WriteString(`trailboard load test
====================

Sends concurrent filtered searches to a trailboard server and verifies
page arithmetic, ranks and filter semantics of every response.

Usage:
  go run ./cmd/loadtest [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of searches to send (default 5000)
  -distance string
        Only query this distance (default: all)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -seed uint
        Seed for query generation (default: current time)
  -log string
        Log file for test output (default: loadtest_TIMESTAMP.log)
  -verbose
        Log every request
  -help
        Show this help message
`)
}
