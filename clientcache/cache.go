/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package clientcache implements the client's range-addressable freshness
// cache described in spec §4.8: a per-path entry covering a byte range,
// reconciled against the server's last-modified timestamp on every miss.
package clientcache

import (
	"sync"
	"time"
)

// Entry is the CacheEntry of spec §3.
type Entry struct {
	Path                 string
	Bytes                []byte
	CoveredOffset        uint64
	CoveredLength        uint64
	FetchedAt            time.Time
	ServerLastModifiedMs int64
}

// covers reports whether [offset, offset+length) lies within the entry's
// covered range and the entry is still within the freshness window.
func (e Entry) covers(offset, length uint64, now time.Time, freshness time.Duration) bool {
	if offset < e.CoveredOffset {
		return false
	}
	if offset+length > e.CoveredOffset+e.CoveredLength {
		return false
	}
	return now.Sub(e.FetchedAt) < freshness
}

func (e Entry) slice(offset, length uint64) []byte {
	start := offset - e.CoveredOffset
	return e.Bytes[start : start+length]
}

// Cache is the client-side freshness cache, keyed by path.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]Entry
	freshness time.Duration
	now       func() time.Time
}

// New returns an empty Cache with the given freshness window.
func New(freshness time.Duration) *Cache {
	return &Cache{
		entries:   make(map[string]Entry),
		freshness: freshness,
		now:       time.Now,
	}
}

// Get attempts a cache hit for [offset, offset+length) on path. Returns the
// requested slice and true on a hit, or nil/false on a miss — no server
// interaction happens here; the caller issues a READ on a miss and calls
// Reconcile with the reply.
func (c *Cache) Get(path string, offset, length uint64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok || !e.covers(offset, length, c.now(), c.freshness) {
		return nil, false
	}

	return e.slice(offset, length), true
}

// Reconcile applies spec §4.8's three-way rule after a READ reply for
// [offset, offset+length) on path: store on first sight, refresh timestamp
// and retain payload when the server mtime is unchanged, or replace the
// entry entirely when the server mtime has moved.
func (c *Cache) Reconcile(path string, offset, length uint64, payload []byte, serverLastModifiedMs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, had := c.entries[path]

	switch {
	case !had:
		c.entries[path] = Entry{
			Path:                 path,
			Bytes:                payload,
			CoveredOffset:        offset,
			CoveredLength:        uint64(len(payload)),
			FetchedAt:            c.now(),
			ServerLastModifiedMs: serverLastModifiedMs,
		}
	case prev.ServerLastModifiedMs == serverLastModifiedMs:
		prev.FetchedAt = c.now()
		c.entries[path] = prev
	default:
		c.entries[path] = Entry{
			Path:                 path,
			Bytes:                payload,
			CoveredOffset:        offset,
			CoveredLength:        uint64(len(payload)),
			FetchedAt:            c.now(),
			ServerLastModifiedMs: serverLastModifiedMs,
		}
	}
}

// Invalidate drops any cached entry for path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}
