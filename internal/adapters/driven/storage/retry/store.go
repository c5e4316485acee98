// Package retry decorates a RecordStore with paced retries of transient failures.
package retry

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Options configures retries.
type Options struct {
	// Attempts is the total number of tries per call, including the first.
	Attempts int

	// Interval is the minimum spacing between retries across all calls.
	Interval time.Duration

	// Transient decides whether an error is worth retrying.
	Transient func(error) bool
}

// DefaultOptions returns three attempts spaced 50ms apart.
func DefaultOptions() Options {
	return Options{Attempts: 3, Interval: 50 * time.Millisecond, Transient: IsTransient}
}

// IsTransient treats every error as transient except domain sentinels and
// context cancellation, which a retry cannot fix.
func IsTransient(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAlreadyExists):
		return false
	default:
		return true
	}
}

// Store retries the calls of a wrapped RecordStore.
type Store struct {
	next      driven.RecordStore
	attempts  int
	limiter   *rate.Limiter
	transient func(error) bool
}

// NewStore wraps next. Zero option fields take their defaults.
func NewStore(next driven.RecordStore, opts Options) *Store {
	defaults := DefaultOptions()
	if opts.Attempts < 1 {
		opts.Attempts = defaults.Attempts
	}
	if opts.Interval <= 0 {
		opts.Interval = defaults.Interval
	}
	if opts.Transient == nil {
		opts.Transient = defaults.Transient
	}
	return &Store{
		next:      next,
		attempts:  opts.Attempts,
		limiter:   rate.NewLimiter(rate.Every(opts.Interval), 1),
		transient: opts.Transient,
	}
}

func (s *Store) do(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		if attempt > 1 {
			if werr := s.limiter.Wait(ctx); werr != nil {
				return err
			}
			logger.Debug("retrying %s (attempt %d/%d): %v", op, attempt, s.attempts, err)
		}
		err = fn()
		if !s.transient(err) {
			return err
		}
	}
	return err
}

// Save stores a record.
func (s *Store) Save(ctx context.Context, rec *domain.Record) error {
	return s.do(ctx, "save", func() error { return s.next.Save(ctx, rec) })
}

// Get retrieves a record.
func (s *Store) Get(ctx context.Context, typ, id string) (*domain.Record, error) {
	var rec *domain.Record
	err := s.do(ctx, "get", func() error {
		var err error
		rec, err = s.next.Get(ctx, typ, id)
		return err
	})
	return rec, err
}

// List returns matching records.
func (s *Store) List(ctx context.Context, q domain.Query) ([]domain.Record, error) {
	var records []domain.Record
	err := s.do(ctx, "list", func() error {
		var err error
		records, err = s.next.List(ctx, q)
		return err
	})
	return records, err
}

// Count returns the number of matching records.
func (s *Store) Count(ctx context.Context, q domain.Query) (int, error) {
	var n int
	err := s.do(ctx, "count", func() error {
		var err error
		n, err = s.next.Count(ctx, q)
		return err
	})
	return n, err
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, typ, id string) error {
	return s.do(ctx, "delete", func() error { return s.next.Delete(ctx, typ, id) })
}
