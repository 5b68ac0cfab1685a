// Package loader batches and memoizes key lookups for the lifetime of a
// single request. Values requested while a batch is still open are coalesced
// into one fetch, and every key is fetched at most once no matter how many
// times it is requested.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Thunk returns the resolved value for one requested key. It blocks until
// the batch carrying the key has been dispatched, triggering the dispatch
// itself if nothing else has.
type Thunk[V any] func() (V, error)

// FetchFunc resolves a batch of distinct keys in one call. The result must
// hold exactly one value per key, aligned positionally; a zero value marks a
// key with nothing behind it.
type FetchFunc[V any] func(ctx context.Context, keys []string) ([]V, error)

// Observer is notified once per dispatched batch.
type Observer func(name string, size int, duration time.Duration, err error)

type entry[V any] struct {
	ready chan struct{}
	value V
	err   error
}

// Loader coalesces Load calls into batched fetches. A Loader is scoped to
// one request and is safe for concurrent use within it.
type Loader[V any] struct {
	name     string
	fetch    FetchFunc[V]
	observer Observer

	mu      sync.Mutex
	entries map[string]*entry[V]
	pending []string
}

type settings struct {
	observer Observer
}

// Option configures a Loader.
type Option func(*settings)

// WithObserver registers a callback invoked after every dispatched batch.
func WithObserver(fn Observer) Option {
	return func(s *settings) { s.observer = fn }
}

// New builds a Loader around fetch. The name labels the loader in telemetry.
func New[V any](name string, fetch FetchFunc[V], opts ...Option) *Loader[V] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Loader[V]{
		name:     name,
		fetch:    fetch,
		observer: s.observer,
		entries:  make(map[string]*entry[V]),
	}
}

// Load requests the value for key and returns a thunk that yields it later.
// The first request for a key joins the open batch; repeat requests share
// the original entry, resolved or not.
func (l *Loader[V]) Load(ctx context.Context, key string) Thunk[V] {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry[V]{ready: make(chan struct{})}
		l.entries[key] = e
		l.pending = append(l.pending, key)
	}
	l.mu.Unlock()

	return func() (V, error) {
		l.Flush(ctx)
		select {
		case <-e.ready:
			return e.value, e.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}
}

// Flush dispatches the open batch, if any. Keys loaded while the fetch is in
// flight start a new batch. A fetch error, including a result misaligned
// with the batch, is fanned out to every waiter in the batch.
func (l *Loader[V]) Flush(ctx context.Context) {
	l.mu.Lock()
	keys := l.pending
	l.pending = nil
	if len(keys) == 0 {
		l.mu.Unlock()
		return
	}
	batch := make([]*entry[V], len(keys))
	for i, key := range keys {
		batch[i] = l.entries[key]
	}
	l.mu.Unlock()

	start := time.Now()
	values, err := l.fetch(ctx, keys)
	if err == nil && len(values) != len(keys) {
		err = fmt.Errorf("loader %s: fetch returned %d values for %d keys", l.name, len(values), len(keys))
	}
	if l.observer != nil {
		l.observer(l.name, len(keys), time.Since(start), err)
	}

	for i, e := range batch {
		if err != nil {
			e.err = err
		} else {
			e.value = values[i]
		}
		close(e.ready)
	}
}
