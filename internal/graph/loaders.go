package graph

import (
	"context"
	"time"

	"baseball-graph-service/internal/domain/players"
	"baseball-graph-service/internal/loader"
	"baseball-graph-service/internal/metrics"
)

// Gateway is the storage surface the per-request loaders batch against.
// Both fetches align output positionally with input: one slot per id, nil
// where storage holds nothing.
type Gateway interface {
	Profiles(ctx context.Context, ids []string) ([]*players.Profile, error)
	Stats(ctx context.Context, ids []string) ([]*players.Stats, error)
}

// Loader names double as telemetry labels.
const (
	profilesLoaderName = "profiles"
	statsLoaderName    = "stats"
)

// Loaders is the per-request pair of batched loaders. Every operation gets
// a fresh set, so nothing carries over between requests.
type Loaders struct {
	Profiles *loader.Loader[*players.Profile]
	Stats    *loader.Loader[*players.Stats]
}

// NewLoaders builds request-scoped loaders over gateway, reporting each
// dispatched batch to recorder.
func NewLoaders(gateway Gateway, recorder *metrics.Recorder) *Loaders {
	observe := func(name string, size int, duration time.Duration, err error) {
		recorder.RecordLoaderBatch(name, size, duration, err)
	}
	return &Loaders{
		Profiles: loader.New(profilesLoaderName, gateway.Profiles, loader.WithObserver(observe)),
		Stats:    loader.New(statsLoaderName, gateway.Stats, loader.WithObserver(observe)),
	}
}

type loadersKey struct{}

// WithLoaders attaches a loader set to the request context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

// LoadersFrom returns the loader set attached to the context, or nil.
func LoadersFrom(ctx context.Context) *Loaders {
	if ctx == nil {
		return nil
	}
	if l, ok := ctx.Value(loadersKey{}).(*Loaders); ok {
		return l
	}
	return nil
}
