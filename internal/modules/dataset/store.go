package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/domain"
)

// ErrNotLoaded is returned before the first successful load
var ErrNotLoaded = errors.New("dataset not loaded")

// Store holds the live Dataset. Readers always see a complete Dataset; a
// reload swaps in a new one only when it loaded successfully.
type Store struct {
	loader  *Loader
	locator string
	current atomic.Pointer[domain.Dataset]
	mu      sync.Mutex // serialises loads
	log     zerolog.Logger
}

// NewStore creates a store bound to one locator
func NewStore(loader *Loader, locator string, log zerolog.Logger) *Store {
	return &Store{
		loader:  loader,
		locator: locator,
		log:     log.With().Str("component", "dataset_store").Logger(),
	}
}

// Locator returns the resource the store loads from
func (s *Store) Locator() string {
	return s.locator
}

// Current returns the live dataset or ErrNotLoaded
func (s *Store) Current() (*domain.Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return ds, nil
}

// Reload loads the locator again. On failure the previous dataset stays live.
func (s *Store) Reload(ctx context.Context) (*domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.loader.Load(ctx, s.locator)
	if err != nil {
		if prev := s.current.Load(); prev != nil {
			s.log.Warn().Err(err).Str("dataset_id", prev.ID()).Msg("Reload failed, keeping previous dataset")
		}
		return nil, err
	}

	s.current.Store(ds)
	return ds, nil
}

// ReloadJob adapts Store.Reload to the scheduler's Job interface
type ReloadJob struct {
	store   *Store
	timeout time.Duration
}

// NewReloadJob creates a reload job bounded by timeout
func NewReloadJob(store *Store, timeout time.Duration) *ReloadJob {
	return &ReloadJob{store: store, timeout: timeout}
}

// Name returns the job name
func (j *ReloadJob) Name() string {
	return "dataset_reload"
}

// Run reloads the dataset
func (j *ReloadJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_, err := j.store.Reload(ctx)
	return err
}
