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

// Package client implements the client's InvocationStrategy (spec §4.4): a
// single logical requestId reused across every retry, bounded by maxRetries,
// synthesizing a NetworkErrorResponse once every attempt has failed.
package client

import (
	liblog "github.com/nabbar/rfas/logger"
	logtps "github.com/nabbar/rfas/logger/types"
	"github.com/nabbar/rfas/protocol"
)

// Transport is the ClientTransport seam this strategy drives. Satisfied by
// transport/client.Transport.
type Transport interface {
	SendAndReceive(b []byte) ([]byte, error)
}

// Strategy runs one Request to completion against a Transport, retrying up
// to maxRetries times on a transport error or a missing reply. An undecodable
// reply is not retried: it ends the invocation with a GeneralErrorResponse.
type Strategy struct {
	transport  Transport
	maxRetries int
	log        liblog.Logger
}

// New returns a Strategy bound to t, retrying each invocation up to
// maxRetries times (maxRetries itself does not count as a retry: it is the
// total number of attempts after the first).
func New(t Transport, maxRetries int, log liblog.Logger) *Strategy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Strategy{transport: t, maxRetries: maxRetries, log: log}
}

// Invoke assigns req a stable RequestId (if it does not already carry one,
// e.g. on first use) and sends it, retrying on failure up to maxRetries
// times. Scenario S6: once every attempt is exhausted, a synthesized
// NetworkErrorResponse is returned rather than a zero Response.
func (s *Strategy) Invoke(req protocol.Request) protocol.Response {
	if req.RequestId == 0 {
		req.RequestId = protocol.NewRequestID()
	}
	wire := protocol.MarshalRequest(req)

	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if s.log != nil {
			s.log.Debug("sending request", map[string]interface{}{
				logtps.FieldRequestID: req.RequestId, logtps.FieldOp: req.Op.String(), "attempt": attempt,
			})
		}

		reply, err := s.transport.SendAndReceive(wire)
		if err != nil {
			lastErr = err
			continue
		}
		if reply == nil {
			// Simulated or real loss: no reply arrived, retry.
			continue
		}

		resp, err := protocol.UnmarshalResponse(reply)
		if err != nil {
			return protocol.GeneralErrorResponse(err.Error())
		}
		return resp
	}

	msg := "no reply received after exhausting retries"
	if lastErr != nil {
		msg = lastErr.Error()
	}
	return protocol.NetworkErrorResponse(msg)
}
