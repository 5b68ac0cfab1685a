package metrics

import (
	"sync"
	"time"
)

type queryStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

type batchStats struct {
	batches       int
	keys          int
	errors        int
	lastBatchSize int
	lastLatency   time.Duration
}

type operationStats struct {
	count       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about store queries,
// loader batches, and GraphQL operations. It is intentionally simple so it
// can be swapped for a real backend later.
type Recorder struct {
	mu         sync.Mutex
	queries    map[string]*queryStats
	batches    map[string]*batchStats
	operations map[string]*operationStats
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		queries:    make(map[string]*queryStats),
		batches:    make(map[string]*batchStats),
		operations: make(map[string]*operationStats),
		otel:       otel,
	}
}

// RecordStoreQuery increments counters for one storage call and stores the
// last observed latency.
func (r *Recorder) RecordStoreQuery(query string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.queries[query]
	if !ok {
		stats = &queryStats{}
		r.queries[query] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreQuery(query, duration, err)
	}
}

// RecordLoaderBatch tracks one dispatched batch fetch and how many keys it
// carried.
func (r *Recorder) RecordLoaderBatch(loader string, size int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.batches[loader]
	if !ok {
		stats = &batchStats{}
		r.batches[loader] = stats
	}
	stats.batches++
	stats.keys += size
	stats.lastBatchSize = size
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLoaderBatch(loader, size, duration, err)
	}
}

// RecordOperation tracks one executed GraphQL operation and how many errors
// its response carried.
func (r *Recorder) RecordOperation(operation string, duration time.Duration, errCount int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.operations[operation]
	if !ok {
		stats = &operationStats{}
		r.operations[operation] = stats
	}
	stats.count++
	stats.errors += errCount
	stats.lastLatency = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordOperation(operation, duration, errCount)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// StoreCalls returns the total calls recorded for a store query.
func (r *Recorder) StoreCalls(query string) int {
	return r.QuerySnapshot(query).Calls
}

// StoreErrors returns the failed calls recorded for a store query.
func (r *Recorder) StoreErrors(query string) int {
	return r.QuerySnapshot(query).Errors
}

// LoaderBatches returns how many batches a loader has dispatched.
func (r *Recorder) LoaderBatches(loader string) int {
	return r.BatchSnapshot(loader).Batches
}

// LoaderKeys returns the total keys carried across a loader's batches.
func (r *Recorder) LoaderKeys(loader string) int {
	return r.BatchSnapshot(loader).Keys
}

// LastBatchSize returns the key count of a loader's most recent batch.
func (r *Recorder) LastBatchSize(loader string) int {
	return r.BatchSnapshot(loader).LastBatchSize
}

// Operations returns the total executions recorded for a GraphQL operation.
func (r *Recorder) Operations(operation string) int {
	return r.OperationSnapshot(operation).Count
}

// OperationErrors returns the total response errors recorded for a GraphQL operation.
func (r *Recorder) OperationErrors(operation string) int {
	return r.OperationSnapshot(operation).Errors
}

// QuerySnapshot is a copy of the counters for one store query.
type QuerySnapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) QuerySnapshot(query string) QuerySnapshot {
	if r == nil {
		return QuerySnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.queries[query]; ok && stats != nil {
		return QuerySnapshot{Calls: stats.calls, Errors: stats.errors, LastLatency: stats.lastLatency}
	}
	return QuerySnapshot{}
}

// BatchSnapshot is a copy of the counters for one loader.
type BatchSnapshot struct {
	Batches       int
	Keys          int
	Errors        int
	LastBatchSize int
	LastLatency   time.Duration
}

func (r *Recorder) BatchSnapshot(loader string) BatchSnapshot {
	if r == nil {
		return BatchSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.batches[loader]; ok && stats != nil {
		return BatchSnapshot{
			Batches:       stats.batches,
			Keys:          stats.keys,
			Errors:        stats.errors,
			LastBatchSize: stats.lastBatchSize,
			LastLatency:   stats.lastLatency,
		}
	}
	return BatchSnapshot{}
}

// OperationSnapshot is a copy of the counters for one GraphQL operation.
type OperationSnapshot struct {
	Count       int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) OperationSnapshot(operation string) OperationSnapshot {
	if r == nil {
		return OperationSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.operations[operation]; ok && stats != nil {
		return OperationSnapshot{Count: stats.count, Errors: stats.errors, LastLatency: stats.lastLatency}
	}
	return OperationSnapshot{}
}
