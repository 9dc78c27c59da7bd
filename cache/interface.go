/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package cache is a generic, TTL-expiring key/value store layered over the
// atomic package's MapTyped. replycache is its only consumer: it stores the
// Response computed for each requestId so a client retry within the TTL
// window gets the original outcome back instead of re-running the write.
package cache

import (
	"context"
	"io"
	"time"

	libatm "github.com/nabbar/rfas/atomic"
	cchitm "github.com/nabbar/rfas/cache/item"
)

// FuncCache is a function type that returns a Cache instance.
// It is useful for lazy initialization or factory patterns.
type FuncCache[K comparable, V any] func() Cache[K, V]

// Generic defines the base interface for cache operations that are independent of the key-value types.
// It combines context.Context and io.Closer interfaces with cache-specific cleanup methods.
type Generic interface {
	context.Context
	io.Closer

	// Clean removes every item from the cache, expired or not.
	// It is safe to call Clean while other goroutines are accessing the cache.
	Clean()

	// Expire is used to check all stored items and clean expired items.
	// It is safe to call Expire while other goroutines are accessing the cache.
	Expire()
}

// Cache is the main interface for interacting with a typed cache.
// It provides type-safe storage and retrieval of key-value pairs with automatic expiration.
//
// The cache is generic and works with any comparable key type K and any value type V.
// All operations are thread-safe and can be called concurrently from multiple goroutines.
//
// Example:
//
//	cache := cache.New[string, int](ctx, 5*time.Minute)
//	defer cache.Close()
//	cache.Store("key", 42)
//	value, remaining, ok := cache.Load("key")
type Cache[K comparable, V any] interface {
	Generic

	// Clone returns a new Cache holding a snapshot of the current one's
	// live items, sharing none of its storage.
	Clone(context.Context) (Cache[K, V], error)

	// Merge copies every item from c into the receiver, without
	// overwriting keys the receiver already holds.
	Merge(Cache[K, V])

	// Walk visits every live item until fct returns false, skipping (and
	// dropping) any item found expired along the way.
	Walk(func(K, V, time.Duration) bool)

	// Load returns the value for key and the time elapsed since it was
	// stored (0 when the cache has no TTL). An expired item is deleted and
	// reported as not found.
	Load(K) (V, time.Duration, bool)

	// Store records val for key, expiring after the TTL passed to New.
	Store(K, V)

	// Delete removes key unconditionally.
	Delete(K)

	// LoadOrStore returns the current value for key if live, otherwise
	// stores val and returns the zero value, 0 and false.
	LoadOrStore(K, V) (V, time.Duration, bool)

	// LoadAndDelete returns and removes the value for key in one step.
	LoadAndDelete(K) (V, bool)

	// Swap stores val for key and returns whatever was there before.
	Swap(key K, val V) (V, time.Duration, bool)
}

// New returns a Cache whose items expire ttl after being stored (0 means
// they never expire). A nil ctx defaults to context.Background(); closing
// the cache cancels the context it derives.
func New[K comparable, V any](ctx context.Context, ttl time.Duration) Cache[K, V] {
	if ctx == nil {
		ctx = context.Background()
	}

	var cnl context.CancelFunc
	ctx, cnl = context.WithCancel(ctx)

	n := &ttlCache[K, V]{
		Context: ctx,

		cancel: cnl,
		items:  libatm.NewMapTyped[K, cchitm.CacheItem[V]](),
		ttl:    ttl,
	}

	return n
}
