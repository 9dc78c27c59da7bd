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

import cchitm "github.com/nabbar/rfas/cache/item"

// Close cancels the cache's derived context and clears every stored item.
// replycache's Close forwards to it; server.Service.Close does not call it.
func (o *ttlCache[K, V]) Close() error {
	if o.cancel != nil {
		o.cancel()
	}

	o.Clean()
	return nil
}

// Clean drops every item regardless of expiration.
func (o *ttlCache[K, V]) Clean() {
	o.items.Range(func(key K, v cchitm.CacheItem[V]) bool {
		if val, ok := o.items.LoadAndDelete(key); ok {
			val.Clean()
		}

		return true
	})
}

// Expire drops only the items whose TTL has elapsed.
func (o *ttlCache[K, V]) Expire() {
	o.items.Range(func(key K, val cchitm.CacheItem[V]) bool {
		if !val.Check() {
			o.items.Delete(key)
		}
		return true
	})
}
