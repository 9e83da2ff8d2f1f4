package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/okian/trailboard/internal/adapters/client"
	"github.com/okian/trailboard/internal/adapters/tui"
	"github.com/okian/trailboard/internal/browser"
	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
)

const (
	defaultURL        = "http://localhost:9080"
	defaultTimeout    = 10 * time.Second
	logFilePermission = 0o600
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	var (
		baseURL  = flag.String("url", envOr("TRAILBOARD_URL", defaultURL), "Base URL of the trailboard server")
		distance = flag.String("distance", "75k", `Distance to open ("75k", "55k", or "" for all runners)`)
		logFile  = flag.String("log", envOr("TRAILBOARD_BROWSE_LOG", "trailboard-browse.log"), "Log file (the terminal is owned by the UI)")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		debug    = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := run(*baseURL, types.Distance(*distance), *logFile, *timeout, *debug); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(baseURL string, distance types.Distance, logFile string, timeout time.Duration, debug bool) error {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	charm := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "browse",
	})
	if debug {
		charm.SetLevel(log.DebugLevel)
	}
	l := tui.NewLogger(charm)

	c, err := client.New(baseURL,
		client.WithTimeout(timeout),
		client.WithLogger(l.Named("client")),
	)
	if err != nil {
		return err
	}

	// Unsupported distances are passed through: the server rejects them
	// and the session settles on its no-data state.
	session := browser.New(distance, browser.WithLogger(l.Named("session")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l.Info(ctx, "starting browser", logger.String("url", baseURL), logger.String("distance", string(distance)))
	if _, err := tea.NewProgram(tui.New(ctx, c, session), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("browser program error: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
