// Package view holds per-page state: the data a page fetched, whether the
// fetch is still running or failed, and the user's filter selections.
package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/omarshaarawi/scorebot/internal/derive"
	"github.com/omarshaarawi/scorebot/internal/models"
)

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Fetch loads a page's data.
type Fetch[T any] func(ctx context.Context) (T, error)

// Filters are user selections. Changing them never triggers a fetch.
type Filters struct {
	League          string
	Market          string
	MinConfidence   models.Confidence
	TwoUpOnly       bool
	RecommendedOnly bool
	ScoreBand       string
	AccumulatorType string
	Tab             string
	Period          models.Period
}

func DefaultFilters() Filters {
	return Filters{
		League:          derive.All,
		Market:          derive.All,
		ScoreBand:       derive.All,
		AccumulatorType: derive.All,
		Tab:             "all",
		Period:          models.PeriodMonthly,
	}
}

func (f Filters) Picks() derive.PickFilters {
	return derive.PickFilters{
		Market:        f.Market,
		League:        f.League,
		MinConfidence: f.MinConfidence,
		TwoUpOnly:     f.TwoUpOnly,
	}
}

// State is a snapshot of a store.
type State[T any] struct {
	Status  Status
	Data    T
	Err     string
	Filters Filters
}

func (s State[T]) Loading() bool {
	return s.Status == Loading
}

// Store is owned by a single page. It runs at most one fetch per mount.
type Store[T any] struct {
	mu      sync.Mutex
	name    string
	status  Status
	data    T
	err     string
	filters Filters
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
	gone    bool
}

func NewStore[T any](name string, empty T, filters Filters) *Store[T] {
	return &Store[T]{
		name:    name,
		status:  Idle,
		data:    empty,
		filters: filters,
		done:    make(chan struct{}),
	}
}

// Mount creates a store that is already loading.
func Mount[T any](ctx context.Context, name string, empty T, filters Filters, fetch Fetch[T]) *Store[T] {
	s := NewStore(name, empty, filters)
	s.Load(ctx, fetch)
	return s
}

// Load starts the page's single fetch. Later calls are ignored.
func (s *Store[T]) Load(ctx context.Context, fetch Fetch[T]) {
	s.mu.Lock()
	if s.started || s.gone {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.status = Loading
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	go func() {
		data, err := fetch(ctx)
		s.resolve(data, err)
	}()
}

func (s *Store[T]) resolve(data T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gone {
		return
	}

	if err != nil {
		slog.Warn("Page load failed", "page", s.name, "error", err)
		s.status = Failed
		s.err = err.Error()
	} else {
		s.status = Loaded
		s.data = data
	}
	s.cancel()
	close(s.done)
}

// Unmount cancels an in-flight fetch. A response arriving afterwards is
// dropped.
func (s *Store[T]) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gone {
		return
	}
	s.gone = true
	if s.status == Loading {
		s.cancel()
		close(s.done)
	}
}

// Wait blocks until the fetch finishes, the store is unmounted or ctx ends.
func (s *Store[T]) Wait(ctx context.Context) State[T] {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	if started {
		select {
		case <-s.done:
		case <-ctx.Done():
		}
	}
	return s.State()
}

func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State[T]{
		Status:  s.status,
		Data:    s.data,
		Err:     s.err,
		Filters: s.filters,
	}
}

func (s *Store[T]) SetFilters(f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
}
