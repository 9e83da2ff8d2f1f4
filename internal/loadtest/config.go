package loadtest

import (
	"net/url"
	"strconv"
	"time"

	"github.com/okian/trailboard/internal/domain/types"
)

// Config holds configuration for a load test run
type Config struct {
	BaseURL   string           // Base URL of the service
	Distances []types.Distance // Distances to query; empty means all
	Requests  int              // Number of search requests to send
	Workers   int              // Number of concurrent workers
	Timeout   time.Duration    // HTTP request timeout
	Seed      uint64           // Seed for query generation
	LogFile   string           // Log file for test output
	Verbose   bool             // Enable verbose logging
}

// Query is one generated search request.
type Query struct {
	Distance    types.Distance `json:"distance"`
	Gender      types.Gender   `json:"gender,omitempty"`
	Nationality string         `json:"nationality,omitempty"`
	Category    string         `json:"category,omitempty"`
	Search      string         `json:"q,omitempty"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size,omitempty"`
}

// Path returns the request path and query string of q.
func (q Query) Path() string {
	v := url.Values{}
	if q.Gender != "" {
		v.Set("gender", string(q.Gender))
	}
	if q.Nationality != "" {
		v.Set("nationality", q.Nationality)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	path := "/api/runners/" + url.PathEscape(string(q.Distance)) + "/search"
	if enc := v.Encode(); enc != "" {
		path += "?" + enc
	}
	return path
}

// Stats holds test statistics
type Stats struct {
	QueriesGenerated int
	Submitted        int
	Successful       int
	Failed           int
	Mismatched       int
	RowsReturned     int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
