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

package atomic

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Cast attempts a type assertion from any to M, treating a deep-equal match
// against M's zero value as a failed cast — the same rule sync/atomic.Value
// needs, since it stores every value behind an interface{}.
func Cast[M any](src any) (model M, casted bool) {
	if reflect.DeepEqual(src, model) {
		return model, false
	}
	if v, ok := src.(M); ok {
		return v, true
	}
	return model, false
}

// IsEmpty reports whether src is nil, the zero value of M, or not assignable
// to M at all.
func IsEmpty[M any](src any) bool {
	_, ok := Cast[M](src)
	return !ok
}

// defaultValue wraps a substitute value so it can be told apart from a
// genuine stored T when both are held behind the same atomic.Value.
type defaultValue[T any] struct {
	v T
}

func newDefault[T any](v T) defaultValue[T] {
	return defaultValue[T]{v: v}
}

func (d defaultValue[T]) GetDefault() T {
	return d.v
}

// atomicValue is the concrete Value[T].
type atomicValue[T any] struct {
	current  *atomic.Value
	loadDef  *atomic.Value
	storeDef *atomic.Value
}

func (o *atomicValue[T]) SetDefaultLoad(def T) {
	o.loadDef.Store(newDefault[T](def))
}

func (o *atomicValue[T]) SetDefaultStore(def T) {
	o.storeDef.Store(newDefault[T](def))
}

func (o *atomicValue[T]) resolveDefault(i any) T {
	if v, ok := Cast[defaultValue[T]](i); ok {
		return v.GetDefault()
	}
	var zero T
	return zero
}

func (o *atomicValue[T]) defaultLoad() T {
	return o.resolveDefault(o.loadDef.Load())
}

func (o *atomicValue[T]) defaultStore() T {
	return o.resolveDefault(o.storeDef.Load())
}

func (o *atomicValue[T]) Load() (val T) {
	if v, ok := Cast[T](o.current.Load()); ok {
		return v
	}
	return o.defaultLoad()
}

func (o *atomicValue[T]) Store(val T) {
	if IsEmpty[T](val) {
		o.current.Store(o.defaultStore())
	} else {
		o.current.Store(val)
	}
}

func (o *atomicValue[T]) Swap(new T) (old T) {
	if IsEmpty[T](new) {
		new = o.defaultStore()
	}

	if v, ok := Cast[T](o.current.Swap(new)); ok {
		return v
	}
	return o.defaultLoad()
}

func (o *atomicValue[T]) CompareAndSwap(old, new T) (swapped bool) {
	if IsEmpty[T](old) {
		old = o.defaultStore()
	}
	if IsEmpty[T](new) {
		new = o.defaultStore()
	}
	return o.current.CompareAndSwap(old, new)
}

// anyMap is the concrete Map[K], a thin sync.Map wrapper that also repairs
// itself: Range drops any entry whose key no longer type-asserts to K
// (which can only happen if a caller reaches into the zero-value sync.Map
// directly — Range treats that as corruption, not a usage error to surface).
type anyMap[K comparable] struct {
	m sync.Map
}

func (o *anyMap[K]) Load(key K) (value any, ok bool) {
	return o.m.Load(key)
}

func (o *anyMap[K]) Store(key K, value any) {
	o.m.Store(key, value)
}

func (o *anyMap[K]) LoadOrStore(key K, value any) (actual any, loaded bool) {
	return o.m.LoadOrStore(key, value)
}

func (o *anyMap[K]) LoadAndDelete(key K) (value any, loaded bool) {
	return o.m.LoadAndDelete(key)
}

func (o *anyMap[K]) Delete(key K) {
	o.m.Delete(key)
}

func (o *anyMap[K]) Swap(key K, value any) (previous any, loaded bool) {
	return o.m.Swap(key, value)
}

func (o *anyMap[K]) CompareAndSwap(key K, old, new any) bool {
	return o.m.CompareAndSwap(key, old, new)
}

func (o *anyMap[K]) CompareAndDelete(key K, old any) (deleted bool) {
	return o.m.CompareAndDelete(key, old)
}

func (o *anyMap[K]) Range(f func(key K, value any) bool) {
	o.m.Range(func(key, value any) bool {
		k, ok := key.(K)
		if !ok {
			o.m.Delete(key)
			return true
		}
		return f(k, value)
	})
}

// typedMap is the concrete MapTyped[K, V], layered over a Map[K] so the
// locking strategy lives in exactly one place (anyMap) regardless of how
// many value types this module needs.
type typedMap[K comparable, V any] struct {
	m Map[K]
}

func (o *typedMap[K, V]) cast(in any, ok bool) (value V, loaded bool) {
	if !ok {
		return value, false
	}
	v, matched := Cast[V](in)
	if !matched {
		return value, false
	}
	return v, true
}

func (o *typedMap[K, V]) Load(key K) (value V, ok bool) {
	return o.cast(o.m.Load(key))
}

func (o *typedMap[K, V]) Store(key K, value V) {
	o.m.Store(key, value)
}

func (o *typedMap[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	return o.cast(o.m.LoadOrStore(key, value))
}

func (o *typedMap[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	return o.cast(o.m.LoadAndDelete(key))
}

func (o *typedMap[K, V]) Delete(key K) {
	o.m.Delete(key)
}

func (o *typedMap[K, V]) Swap(key K, value V) (previous V, loaded bool) {
	return o.cast(o.m.Swap(key, value))
}

func (o *typedMap[K, V]) CompareAndSwap(key K, old, new V) bool {
	return o.m.CompareAndSwap(key, old, new)
}

func (o *typedMap[K, V]) CompareAndDelete(key K, old V) (deleted bool) {
	return o.m.CompareAndDelete(key, old)
}

func (o *typedMap[K, V]) Range(f func(key K, value V) bool) {
	o.m.Range(func(key K, value any) bool {
		v, ok := Cast[V](value)
		if !ok {
			o.m.Delete(key)
			return true
		}
		return f(key, v)
	})
}
