package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	service "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/pkg/logger"
)

// workerChannelMultiplier sizes the query channel per worker.
const workerChannelMultiplier = 2

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request bound to ctx.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// getJSON decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", url, err)
	}
	return nil
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailed
	outcomeMismatch
)

// submitQueries sends queries concurrently using a worker pool and checks
// every response.
func submitQueries(ctx context.Context, config *Config, queries []Query, stats *Stats) {
	log.Printf("📤 Sending %d searches with %d workers...", len(queries), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		successful int64
		failed     int64
		mismatched int64
		submitted  int64
		rows       int64
	)

	queryChan := make(chan Query, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for q := range queryChan {
				if ctx.Err() != nil {
					return
				}
				result, n := submitSingleQuery(ctx, client, config.BaseURL, q)

				atomic.AddInt64(&submitted, 1)
				atomic.AddInt64(&rows, int64(n))
				switch result {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
				case outcomeFailed:
					atomic.AddInt64(&failed, 1)
				case outcomeMismatch:
					atomic.AddInt64(&mismatched, 1)
				}

				if config.Verbose {
					log.Printf("📊 %s -> %d rows", q.Path(), n)
				}
			}
		}()
	}

	go func() {
		defer close(queryChan)
		for _, q := range queries {
			select {
			case <-ctx.Done():
				return
			case queryChan <- q:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.RowsReturned = int(atomic.LoadInt64(&rows))

	log.Printf(`✅ Searches completed:
   Successful: %d
   Mismatched: %d
   Failed: %d
`, stats.Successful, stats.Mismatched, stats.Failed)
}

// submitSingleQuery runs one search and verifies the page.
func submitSingleQuery(ctx context.Context, client *HTTPClient, baseURL string, q Query) (outcome, int) {
	var page service.Page
	if err := client.getJSON(ctx, baseURL+q.Path(), &page); err != nil {
		logger.Get().Warn(ctx, "search failed", logger.String("path", q.Path()), logger.Error(err))
		return outcomeFailed, 0
	}
	if err := verifyPage(q, page); err != nil {
		logger.Get().Error(ctx, "search result mismatch", logger.String("path", q.Path()), logger.Error(err))
		return outcomeMismatch, len(page.Entries)
	}
	return outcomeSuccess, len(page.Entries)
}
