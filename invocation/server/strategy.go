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

// Package server implements the server's InvocationStrategy (spec §4.5): the
// narrow processRequest(bytes, endpoint) -> bytes seam of spec §9, offered as
// two interchangeable strategies — AtLeastOnce (direct dispatch, every retry
// re-executes) and AtMostOnce (reply-cache-backed, a retry returns the first
// computed outcome). SHUTDOWN bypasses both: it never reaches the cache or
// the FileService.
package server

import (
	"net"

	liblog "github.com/nabbar/rfas/logger"
	logtps "github.com/nabbar/rfas/logger/types"
	libmet "github.com/nabbar/rfas/metrics"
	"github.com/nabbar/rfas/protocol"
	"github.com/nabbar/rfas/replycache"
)

// Processor executes one Request against the file operation handlers.
// Satisfied by fileservice.Service.
type Processor interface {
	Dispatch(req protocol.Request, addr net.Addr) protocol.Response
}

// Strategy is the server's InvocationStrategy seam.
type Strategy interface {
	Process(req protocol.Request, addr net.Addr) protocol.Response
}

// AtLeastOnce dispatches every request directly: a client retry re-executes
// the operation, so it is only safe for idempotent operations (spec §4.5).
type AtLeastOnce struct {
	proc Processor
}

// NewAtLeastOnce returns an AtLeastOnce strategy wrapping proc.
func NewAtLeastOnce(proc Processor) *AtLeastOnce {
	return &AtLeastOnce{proc: proc}
}

// Process implements Strategy.
func (s *AtLeastOnce) Process(req protocol.Request, addr net.Addr) protocol.Response {
	if req.Op == protocol.OpShutdown {
		return protocol.ShutdownResponse()
	}
	return s.proc.Dispatch(req, addr)
}

// AtMostOnce implements spec's Invariant 1: the first sight of a requestId
// computes and caches the Response; every later sight of the same requestId
// returns the cached Response without re-executing the operation.
type AtMostOnce struct {
	proc  Processor
	cache replycache.ReplyCache
	met   *libmet.Registry
	log   liblog.Logger
}

// NewAtMostOnce returns an AtMostOnce strategy wrapping proc and backed by cache.
func NewAtMostOnce(proc Processor, cache replycache.ReplyCache, met *libmet.Registry, log liblog.Logger) *AtMostOnce {
	return &AtMostOnce{proc: proc, cache: cache, met: met, log: log}
}

// Process implements Strategy.
func (s *AtMostOnce) Process(req protocol.Request, addr net.Addr) protocol.Response {
	if req.Op == protocol.OpShutdown {
		return protocol.ShutdownResponse()
	}

	if resp, ok := s.cache.Load(req.RequestId); ok {
		s.met.ReplyCacheHit()
		if s.log != nil {
			s.log.Debug("at-most-once cache hit", map[string]interface{}{logtps.FieldRequestID: req.RequestId})
		}
		return resp
	}

	s.met.ReplyCacheMiss()
	resp := s.proc.Dispatch(req, addr)
	s.cache.Store(req.RequestId, resp)
	return resp
}
