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

import "time"

func (o *ttlCache[K, V]) Deadline() (deadline time.Time, ok bool) {
	return o.Context.Deadline()
}

func (o *ttlCache[K, V]) Done() <-chan struct{} {
	return o.Context.Done()
}

func (o *ttlCache[K, V]) Err() error {
	return o.Context.Err()
}

// Value lets a ttlCache stand in for the context it derives from: a lookup
// whose key happens to match K resolves against the cache first (e.g. a
// handler pulling the cached Response back out of ctx) before falling back
// to the parent context's Value.
func (o *ttlCache[K, V]) Value(key any) any {
	if sKey, ok := key.(K); ok {
		if v, _, k := o.Load(sKey); k {
			return v
		}
	}

	return o.Context.Value(key)
}
