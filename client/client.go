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

// Package client ties the client-side pieces of the remote file access
// system together: the retrying InvocationStrategy, the UDP ClientTransport,
// and the range-addressable freshness cache, behind one Service.
package client

import (
	"context"
	"time"

	invclient "github.com/nabbar/rfas/invocation/client"
	liblog "github.com/nabbar/rfas/logger"
	"github.com/nabbar/rfas/clientcache"
	"github.com/nabbar/rfas/protocol"
)

// Transport is the full ClientTransport seam Service depends on. Satisfied
// by transport/client.Transport.
type Transport interface {
	SendAndReceive(b []byte) ([]byte, error)
	ListenForCallback(deadline time.Time) ([]byte, error)
	Close() error
}

// Service is the remote file access client named in spec §3.
type Service struct {
	transport Transport
	invoke    *invclient.Strategy
	cache     *clientcache.Cache
	log       liblog.Logger
}

// New returns a Service driving t, retrying each invocation up to maxRetries
// times, and caching READ results for freshness duration.
func New(t Transport, maxRetries int, freshness time.Duration, log liblog.Logger) *Service {
	return &Service{
		transport: t,
		invoke:    invclient.New(t, maxRetries, log),
		cache:     clientcache.New(freshness),
		log:       log,
	}
}

// Read serves [offset, offset+length) of path from the local cache when
// possible, otherwise issues a READ and reconciles the cache with the reply.
func (s *Service) Read(path string, offset, length uint64) ([]byte, protocol.Status, error) {
	if b, ok := s.cache.Get(path, offset, length); ok {
		return b, protocol.StatusReadSuccess, nil
	}

	resp := s.invoke.Invoke(protocol.Request{Op: protocol.OpRead, Path: path, Offset: offset, Length: length})
	if resp.Status != protocol.StatusReadSuccess && resp.Status != protocol.StatusReadIncomplete {
		return nil, resp.Status, statusError(resp)
	}

	s.cache.Reconcile(path, offset, uint64(len(resp.Payload)), resp.Payload, resp.ServerLastModifiedMs)
	return resp.Payload, resp.Status, nil
}

// WriteInsert issues a WRITE_INSERT and invalidates the path's cache entry,
// since the file's byte layout beyond offset has shifted.
func (s *Service) WriteInsert(path string, offset uint64, payload []byte) error {
	resp := s.invoke.Invoke(protocol.Request{Op: protocol.OpWriteInsert, Path: path, Offset: offset, Payload: payload})
	s.cache.Invalidate(path)
	if resp.Status != protocol.StatusWriteInsertSuccess {
		return statusError(resp)
	}
	return nil
}

// WriteDelete issues a WRITE_DELETE and invalidates the path's cache entry.
func (s *Service) WriteDelete(path string, offset, length uint64) error {
	resp := s.invoke.Invoke(protocol.Request{Op: protocol.OpWriteDelete, Path: path, Offset: offset, Length: length})
	s.cache.Invalidate(path)
	if resp.Status != protocol.StatusWriteDeleteSuccess {
		return statusError(resp)
	}
	return nil
}

// Monitor subscribes to callbacks for path over duration.
func (s *Service) Monitor(path string, duration time.Duration) error {
	resp := s.invoke.Invoke(protocol.Request{Op: protocol.OpMonitor, Path: path, MonitorDurationMs: uint64(duration.Milliseconds())})
	if resp.Status != protocol.StatusMonitorSuccess {
		return statusError(resp)
	}
	return nil
}

// FileInfo requests the FILE_INFO record for path, returned as the
// newline-separated key: value text fileservice.Info.Encode produces.
func (s *Service) FileInfo(path string) (string, error) {
	resp := s.invoke.Invoke(protocol.Request{Op: protocol.OpFileInfo, Path: path})
	if resp.Status != protocol.StatusFileInfoSuccess {
		return "", statusError(resp)
	}
	return string(resp.Payload), nil
}

// Shutdown sends a SHUTDOWN request, which every InvocationStrategy answers
// without touching the FileService.
func (s *Service) Shutdown() error {
	resp := s.invoke.Invoke(protocol.Request{Op: protocol.OpShutdown})
	if resp.Status != protocol.StatusShutdown {
		return statusError(resp)
	}
	return nil
}

// ListenCallbacks blocks, delivering every monitor callback datagram to
// handle, until ctx is canceled. A single transport timeout error between
// datagrams is not fatal — it is treated as "nothing arrived yet" and the
// loop keeps listening up to ctx's deadline.
func (s *Service) ListenCallbacks(ctx context.Context, handle func(protocol.Response)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Now().Add(time.Second)
		}

		b, err := s.transport.ListenForCallback(deadline)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				continue
			}
		}
		if b == nil {
			continue
		}

		resp, err := protocol.UnmarshalResponse(b)
		if err != nil {
			if s.log != nil {
				s.log.Warning("undecodable callback datagram", map[string]interface{}{"error": err.Error()})
			}
			continue
		}
		handle(resp)
	}
}

// Close releases the underlying transport.
func (s *Service) Close() error {
	return s.transport.Close()
}

func statusError(resp protocol.Response) error {
	return ErrOperation.Errorf(resp.Status.String(), resp.Message)
}
