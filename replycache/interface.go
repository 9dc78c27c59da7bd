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

// Package replycache holds the server's at-most-once reply cache: a map from
// requestId to the Response that was computed the first time that request
// was seen, so a client retry returns the original outcome instead of
// re-running a non-idempotent operation.
package replycache

import (
	"context"
	"time"

	libcch "github.com/nabbar/rfas/cache"
	"github.com/nabbar/rfas/protocol"
)

// ReplyCache records one Response per requestId, for the lifetime of the
// process (spec's simplification; New accepts a non-zero ttl for callers
// that want a bounded-retention refinement instead).
type ReplyCache interface {
	// Load returns the cached Response for id, if any.
	Load(id uint64) (protocol.Response, bool)

	// Store records resp as the outcome of id. Subsequent Store calls for the
	// same id overwrite it (last-writer-wins on concurrent inserts, per spec §4.5).
	Store(id uint64, resp protocol.Response)

	// Len reports how many distinct requestIds are currently recorded.
	Len() int

	Close() error
}

type rc struct {
	c libcch.Cache[uint64, protocol.Response]
}

// New returns a ReplyCache. ttl of 0 retains entries for the process
// lifetime, matching spec §3's ReplyCacheEntry lifetime description.
func New(ctx context.Context, ttl time.Duration) ReplyCache {
	return &rc{c: libcch.New[uint64, protocol.Response](ctx, ttl)}
}

func (o *rc) Load(id uint64) (protocol.Response, bool) {
	v, _, ok := o.c.Load(id)
	return v, ok
}

func (o *rc) Store(id uint64, resp protocol.Response) {
	o.c.Store(id, resp)
}

func (o *rc) Len() int {
	n := 0
	o.c.Walk(func(uint64, protocol.Response, time.Duration) bool {
		n++
		return true
	})
	return n
}

func (o *rc) Close() error {
	return o.c.Close()
}
