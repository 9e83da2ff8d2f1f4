package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/internal/loadtest"
)

// Default configuration constants.
const (
	defaultRequests    = 5000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		requests = flag.Int("requests", defaultRequests, "Number of searches to send")
		distance = flag.String("distance", "", "Only query this distance (default: all)")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for query generation")
		logFile  = flag.String("log", "", "Log file for test output (default: loadtest_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Log every request")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	closeLog, err := loadtest.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &loadtest.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		Seed:     *seed,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}
	if *distance != "" {
		d, err := types.ParseDistance(*distance)
		if err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			return
		}
		config.Distances = []types.Distance{d}
	}

	if _, err := loadtest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load test failed: " + err.Error() + "\n")
		return
	}
}
