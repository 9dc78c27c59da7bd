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

// Package monitor implements the path-keyed subscription registry and
// server-initiated callback delivery described in spec §4.7: clients
// register interest in a path for a bounded duration, and mutating
// operations on that path trigger a best-effort callback datagram to every
// live subscriber.
package monitor

import (
	"net"
	"sync"
	"time"

	liblog "github.com/nabbar/rfas/logger"
	logtps "github.com/nabbar/rfas/logger/types"
	"github.com/nabbar/rfas/protocol"
)

// Sender delivers a marshaled callback datagram to a client endpoint.
// ServerTransport's SendTo satisfies this interface.
type Sender interface {
	SendTo(addr net.Addr, b []byte) error
}

type subscription struct {
	addr       net.Addr
	registered time.Time
	duration   time.Duration
}

func (s subscription) expired(now time.Time) bool {
	return now.Sub(s.registered) > s.duration
}

// Registry is the concurrency-safe MonitorRegistry of spec §3/§4.7.
type Registry struct {
	mu   sync.Mutex
	subs map[string][]subscription
	send Sender
	log  liblog.Logger
}

// New returns an empty Registry delivering callbacks through send.
func New(send Sender, log liblog.Logger) *Registry {
	return &Registry{
		subs: make(map[string][]subscription),
		send: send,
		log:  log,
	}
}

// Register adds a subscription for path, expiring durationMs milliseconds
// from now. Implements fileservice.Registrar.
func (r *Registry) Register(path string, addr net.Addr, durationMs uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[path] = append(r.subs[path], subscription{
		addr:       addr,
		registered: time.Now(),
		duration:   time.Duration(durationMs) * time.Millisecond,
	})
}

// Notify scans the subscribers for path, drops any that have expired, and
// delivers a CALLBACK datagram to every subscriber still live. Implements
// fileservice.Notifier. Delivery is best-effort: a send failure is logged and
// otherwise ignored, per spec §4.7's "no retry, no acknowledgment" rule.
func (r *Registry) Notify(path string, op protocol.Op, payload []byte, message string, mtimeMs int64) {
	r.mu.Lock()
	live := r.pruneLocked(path)
	r.mu.Unlock()

	if len(live) == 0 {
		return
	}

	resp := protocol.Response{
		Status:               protocol.StatusCallback,
		Payload:              payload,
		Message:              message,
		ServerLastModifiedMs: mtimeMs,
	}
	wire := protocol.MarshalResponse(resp)

	for _, s := range live {
		if r.send == nil {
			continue
		}
		if err := r.send.SendTo(s.addr, wire); err != nil && r.log != nil {
			r.log.Warning("monitor callback delivery failed", map[string]interface{}{
				logtps.FieldPath: path, logtps.FieldOp: op.String(), logtps.FieldAddr: s.addr.String(), logtps.FieldError: err.Error(),
			})
		}
	}
}

// pruneLocked removes expired subscriptions for path and returns the
// remaining live ones. Must be called with r.mu held.
func (r *Registry) pruneLocked(path string) []subscription {
	now := time.Now()
	existing := r.subs[path]
	live := make([]subscription, 0, len(existing))

	for _, s := range existing {
		if !s.expired(now) {
			live = append(live, s)
		}
	}

	if len(live) == 0 {
		delete(r.subs, path)
	} else {
		r.subs[path] = live
	}

	return live
}

// Count returns the number of live subscriptions for path, pruning expired
// ones first. Exposed for tests and diagnostics.
func (r *Registry) Count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pruneLocked(path))
}
