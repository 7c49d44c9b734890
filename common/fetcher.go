package common

import (
	"context"
	"sync"
	"time"
)

// Result is the uniform envelope every cacheable backend call resolves to.
// Success false carries a human-readable Message instead of Data.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
}

// FetchFunc fetches a resource from the backend. A transport-level failure is
// returned as err; a backend-level failure is a Result with Success false.
type FetchFunc[T any] func(ctx context.Context) (Result[T], error)

// WrapFetch adapts a plain (value, error) call site to the envelope contract,
// so any service method can be handed to a CachedFetcher.
func WrapFetch[T any](fn func(ctx context.Context) (T, error)) FetchFunc[T] {
	return func(ctx context.Context) (Result[T], error) {
		data, err := fn(ctx)
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{Success: true, Data: data}, nil
	}
}

// CachedFetcher adapts an arbitrary fetch operation into a cache-checked call
// under a single key. Failures are never cached, so the next call retries
// instead of being served a stale miss.
//
// Concurrent overlapping Execute calls are not deduplicated: each call
// independently checks the cache and may independently hit the network.
// The store holds whichever write lands last.
type CachedFetcher[T any] struct {
	store CacheRepository[T]
	key   string
	ttl   time.Duration
	fetch FetchFunc[T]

	mu      sync.Mutex
	loading bool
	errMsg  string
}

// NewCachedFetcher builds a fetcher for one cache key. A non-positive ttl
// selects the store's default.
func NewCachedFetcher[T any](store CacheRepository[T], key string, ttl time.Duration, fetch FetchFunc[T]) *CachedFetcher[T] {
	return &CachedFetcher[T]{
		store: store,
		key:   key,
		ttl:   ttl,
		fetch: fetch,
	}
}

// Execute returns the value for the fetcher's key. Unless forceRefresh is
// set, a valid cached entry is returned without invoking the fetch. On a miss
// (or forced refresh) the underlying fetch runs; a successful result is
// written through to the store. On failure nothing is cached, the error
// message is recorded, and the zero value is returned with ok false.
func (f *CachedFetcher[T]) Execute(ctx context.Context, forceRefresh bool) (T, bool) {
	var zero T

	if !forceRefresh {
		if cached, found := f.store.Get(f.key); found {
			return cached, true
		}
	}

	f.setState(true, "")
	res, err := f.fetch(ctx)
	if err != nil {
		f.setState(false, err.Error())
		return zero, false
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "request failed"
		}
		f.setState(false, msg)
		return zero, false
	}

	f.store.Set(f.key, res.Data, f.ttl)
	f.setState(false, "")
	return res.Data, true
}

// Invalidate removes the fetcher's entry so the next Execute bypasses the
// cache regardless of the forceRefresh flag. Call after a mutating update to
// the same resource.
func (f *CachedFetcher[T]) Invalidate() {
	f.store.Remove(f.key)
}

// Loading reports whether a fetch is currently in flight.
func (f *CachedFetcher[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err returns the message from the most recent failed fetch, or "" if the
// last call succeeded.
func (f *CachedFetcher[T]) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Key returns the fetcher's cache key.
func (f *CachedFetcher[T]) Key() string {
	return f.key
}

func (f *CachedFetcher[T]) setState(loading bool, errMsg string) {
	f.mu.Lock()
	f.loading = loading
	f.errMsg = errMsg
	f.mu.Unlock()
}
