/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package atomic provides generic, lock-free-where-possible containers built
// on top of sync/atomic and sync.Map. The at-most-once reply cache (through
// the cache package), the file service's per-path lock table and the error
// pool are kept behind these containers instead of a hand-rolled mutex per
// call site.
package atomic

import (
	"sync"
	"sync/atomic"
)

// Value is a type-safe wrapper around sync/atomic.Value, with an optional
// substitute returned from Load when nothing has been stored yet, and an
// optional substitute written by Store when the caller passes a zero value.
type Value[T any] interface {
	// SetDefaultLoad configures the value Load returns before the first
	// successful Store. Call it before the container is shared across
	// goroutines.
	SetDefaultLoad(def T)
	// SetDefaultStore configures the value substituted whenever Store,
	// Swap or CompareAndSwap is called with the zero value of T.
	SetDefaultStore(def T)

	// Load returns the stored value, or the configured load default if
	// nothing has been stored yet.
	Load() (val T)
	// Store saves val, or the configured store default when val is the
	// zero value of T.
	Store(val T)
	// Swap stores new and returns the value it replaced.
	Swap(new T) (old T)
	// CompareAndSwap stores new only if the current value equals old,
	// reporting whether the swap happened.
	CompareAndSwap(old, new T) (swapped bool)
}

// Map is the any-valued counterpart of sync.Map, exposed as an interface so
// MapTyped can be layered on top of it without duplicating the locking
// strategy for every value type.
type Map[K comparable] interface {
	Load(key K) (value any, ok bool)
	Store(key K, value any)
	LoadOrStore(key K, value any) (actual any, loaded bool)
	LoadAndDelete(key K) (value any, loaded bool)
	Delete(key K)
	Swap(key K, value any) (previous any, loaded bool)
	CompareAndSwap(key K, old, new any) bool
	CompareAndDelete(key K, old any) (deleted bool)
	// Range visits every entry in an unspecified order until f returns
	// false.
	Range(f func(key K, value any) bool)
}

// MapTyped narrows Map to a single value type V, the shape the containers
// in this module store: requestId -> cached Response item in the reply
// cache, path -> *sync.Mutex in the file service's lock table.
type MapTyped[K comparable, V any] interface {
	Load(key K) (value V, ok bool)
	Store(key K, value V)
	LoadOrStore(key K, value V) (actual V, loaded bool)
	LoadAndDelete(key K) (value V, loaded bool)
	Delete(key K)
	Swap(key K, value V) (previous V, loaded bool)
	CompareAndSwap(key K, old, new V) bool
	CompareAndDelete(key K, old V) (deleted bool)
	Range(f func(key K, value V) bool)
}

// NewValue returns a Value[T] whose load and store defaults are both the
// zero value of T.
func NewValue[T any]() Value[T] {
	var zeroLoad, zeroStore T
	return NewValueDefault[T](zeroLoad, zeroStore)
}

// NewValueDefault returns a Value[T] with explicit load and store defaults.
func NewValueDefault[T any](load, store T) Value[T] {
	o := &atomicValue[T]{
		current: new(atomic.Value),
		loadDef: new(atomic.Value),
		storeDef: new(atomic.Value),
	}

	o.SetDefaultLoad(load)
	o.SetDefaultStore(store)

	return o
}

// NewMapAny returns a Map[K] backed by a sync.Map.
func NewMapAny[K comparable]() Map[K] {
	return &anyMap[K]{m: sync.Map{}}
}

// NewMapTyped returns a MapTyped[K, V] layered on a fresh NewMapAny[K].
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &typedMap[K, V]{m: NewMapAny[K]()}
}
