package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/domain"
)

// Result is what a source produced for one load
type Result struct {
	Records []domain.Record
	Skipped int // Malformed rows dropped under RowPolicySkip
}

// Source reads the records behind a locator
type Source interface {
	Load(ctx context.Context, locator string, policy RowPolicy) (Result, error)
}

// openFunc opens the byte stream behind a locator
type openFunc func(ctx context.Context, locator string) (io.ReadCloser, error)

// csvSource adapts any byte stream holding tabular text into a Source
type csvSource struct {
	open openFunc
	log  zerolog.Logger
}

func (s *csvSource) Load(ctx context.Context, locator string, policy RowPolicy) (Result, error) {
	rc, err := s.open(ctx, locator)
	if err != nil {
		return Result{}, err
	}
	defer rc.Close()

	records, skipped, err := ParseCSV(rc, policy, s.log.With().Str("locator", locator).Logger())
	if err != nil {
		return Result{}, err
	}
	return Result{Records: records, Skipped: skipped}, nil
}

// NewFileSource reads CSV from the local filesystem. Accepts plain paths and
// file:// locators.
func NewFileSource(log zerolog.Logger) Source {
	return &csvSource{
		log: log.With().Str("source", "file").Logger(),
		open: func(_ context.Context, locator string) (io.ReadCloser, error) {
			path := strings.TrimPrefix(locator, "file://")
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open file: %w", err)
			}
			return f, nil
		},
	}
}

// NewHTTPSource fetches CSV over HTTP(S). A nil client gets a default with
// the given timeout; a client without a timeout of its own is copied and
// given this one.
func NewHTTPSource(client *http.Client, timeout time.Duration, log zerolog.Logger) Source {
	switch {
	case client == nil:
		client = &http.Client{Timeout: timeout}
	case client.Timeout == 0 && timeout > 0:
		bounded := *client
		bounded.Timeout = timeout
		client = &bounded
	}
	return &csvSource{
		log: log.With().Str("source", "http").Logger(),
		open: func(ctx context.Context, locator string) (io.ReadCloser, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to build request: %w", err)
			}
			req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

			resp, err := client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch: %w", err)
			}
			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				resp.Body.Close()
				return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
			}
			return resp.Body, nil
		},
	}
}
