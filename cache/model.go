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

package cache

import (
	"context"
	"time"

	libatm "github.com/nabbar/rfas/atomic"
	cchitm "github.com/nabbar/rfas/cache/item"
)

// ttlCache is the concrete generic Cache implementation returned by New. Its
// only current consumer is replycache, which stores one protocol.Response
// per requestId keyed by uint64 so a retried request returns the original
// outcome instead of re-running a non-idempotent write.
type ttlCache[K comparable, V any] struct {
	context.Context

	cancel context.CancelFunc
	items  libatm.MapTyped[K, cchitm.CacheItem[V]]
	ttl    time.Duration
}

func (o *ttlCache[K, V]) Clone(ctx context.Context) (Cache[K, V], error) {
	if err := o.Err(); err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = o.Context
	}

	n := New[K, V](ctx, o.ttl).(*ttlCache[K, V])

	o.items.Range(func(key K, val cchitm.CacheItem[V]) bool {
		if v, ok := val.Load(); ok {
			n.items.Store(key, cchitm.New[V](o.ttl, v))
		}
		return true
	})

	return n, nil
}

func (o *ttlCache[K, V]) Merge(c Cache[K, V]) {
	c.Walk(func(key K, val V, _ time.Duration) bool {
		o.items.LoadOrStore(key, cchitm.New[V](o.ttl, val))
		return true
	})
}

func (o *ttlCache[K, V]) Walk(fct func(K, V, time.Duration) bool) {
	if o.Err() != nil {
		return
	}

	o.items.Range(func(key K, val cchitm.CacheItem[V]) bool {
		v, d, ok := val.LoadRemain()
		if !ok {
			o.items.Delete(key)
			return true
		}
		return fct(key, v, d)
	})
}

func (o *ttlCache[K, V]) Load(key K) (val V, remain time.Duration, ok bool) {
	if o.Err() != nil {
		return val, 0, false
	}

	itm, found := o.items.Load(key)
	if !found {
		return val, 0, false
	}

	if val, remain, ok = itm.LoadRemain(); !ok {
		o.items.Delete(key)
		return val, 0, false
	}

	return val, remain, true
}

func (o *ttlCache[K, V]) Store(key K, val V) {
	o.items.Store(key, cchitm.New[V](o.ttl, val))
}

func (o *ttlCache[K, V]) Delete(key K) {
	o.items.Delete(key)
}

func (o *ttlCache[K, V]) LoadOrStore(key K, val V) (actual V, remain time.Duration, loaded bool) {
	if actual, remain, loaded = o.Load(key); loaded {
		return actual, remain, true
	}

	o.Store(key, val)

	var zero V
	return zero, 0, false
}

func (o *ttlCache[K, V]) LoadAndDelete(key K) (val V, loaded bool) {
	if o.Err() != nil {
		return val, false
	}

	itm, found := o.items.LoadAndDelete(key)
	if !found {
		return val, false
	}

	return itm.Load()
}

func (o *ttlCache[K, V]) Swap(key K, val V) (previous V, remain time.Duration, loaded bool) {
	if o.Err() != nil {
		return previous, 0, false
	}

	previous, remain, loaded = o.Load(key)
	o.Store(key, val)
	return previous, remain, loaded
}
