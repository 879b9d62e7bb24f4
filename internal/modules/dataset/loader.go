// Package dataset loads stock price records into an immutable Dataset.
package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/domain"
)

// Loader resolves a locator to a Source by scheme and builds a Dataset
type Loader struct {
	sources map[string]Source
	policy  RowPolicy
	log     zerolog.Logger
	now     func() time.Time
}

// NewLoader creates a loader with no sources registered
func NewLoader(policy RowPolicy, log zerolog.Logger) *Loader {
	if policy == "" {
		policy = RowPolicyStrict
	}
	return &Loader{
		sources: make(map[string]Source),
		policy:  policy,
		log:     log.With().Str("service", "dataset_loader").Logger(),
		now:     time.Now,
	}
}

// Register binds a source to a locator scheme ("file", "http", "s3", ...)
func (l *Loader) Register(scheme string, src Source) {
	l.sources[strings.ToLower(scheme)] = src
}

// Schemes lists the registered locator schemes
func (l *Loader) Schemes() []string {
	out := make([]string, 0, len(l.sources))
	for scheme := range l.sources {
		out = append(out, scheme)
	}
	return out
}

// Load reads and parses the resource behind locator. Any failure is a
// *LoadError; under the strict policy it wraps the offending *ParseError.
func (l *Loader) Load(ctx context.Context, locator string) (*domain.Dataset, error) {
	start := l.now()
	scheme := Scheme(locator)

	src, ok := l.sources[scheme]
	if !ok {
		return nil, loadError(locator, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme))
	}

	res, err := src.Load(ctx, locator, l.policy)
	if err != nil {
		return nil, loadError(locator, err)
	}

	ds := domain.NewDataset(uuid.NewString(), locator, l.now(), res.Records)

	l.log.Info().
		Str("locator", locator).
		Str("dataset_id", ds.ID()).
		Int("records", ds.Len()).
		Int("symbols", len(ds.Symbols())).
		Int("skipped", res.Skipped).
		Dur("duration_ms", l.now().Sub(start)).
		Msg("Dataset loaded")

	return ds, nil
}

// Scheme returns the lower-cased scheme of a locator; bare paths are "file"
func Scheme(locator string) string {
	scheme, _, found := strings.Cut(locator, "://")
	if !found || scheme == "" {
		return "file"
	}
	scheme = strings.ToLower(scheme)
	if scheme == "https" {
		return "http"
	}
	return scheme
}
