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

// Package client implements the client-side ClientTransport of spec §4.2: a
// single UDP socket dialed to the server, with directional loss simulation
// and a read-deadline timeout standing in for network unreliability.
package client

import (
	"math/rand"
	"net"
	"time"

	liblog "github.com/nabbar/rfas/logger"
	libmet "github.com/nabbar/rfas/metrics"
	"github.com/nabbar/rfas/protocol"
)

// Transport is a UDP-backed ClientTransport dialed to a single server
// endpoint. It is not safe for concurrent use by multiple goroutines: the
// invocation layer above it serializes calls per outstanding request.
type Transport struct {
	conn     *net.UDPConn
	timeout  time.Duration
	sendProb float64
	recvProb float64
	rnd      *rand.Rand
	log      liblog.Logger
	met      *libmet.Registry
}

// New dials serverAddr ("host:port") over UDP. sendProb and recvProb are the
// probabilities, in [0,1], that an outgoing or incoming datagram is dropped
// by simulated loss before touching the socket.
func New(serverAddr string, timeout time.Duration, sendProb, recvProb float64, log liblog.Logger, met *libmet.Registry) (*Transport, error) {
	raddr, err := net.ResolveUDPAddr("udp", serverAddr)
	if err != nil {
		return nil, ErrDial.Error(err)
	}

	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, ErrDial.Error(err)
	}

	return &Transport{
		conn:     conn,
		timeout:  timeout,
		sendProb: sendProb,
		recvProb: recvProb,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
		met:      met,
	}, nil
}

func (t *Transport) drop(prob float64) bool {
	if prob <= 0 {
		return false
	}
	return t.rnd.Float64() < prob
}

// SendAndReceive writes b to the server and blocks for a single reply, up to
// the configured timeout. Per spec §4.2, a simulated send-side drop returns
// (nil, nil) without touching the socket — the caller (invocation/client)
// treats that identically to a true network loss and retries or times out.
func (t *Transport) SendAndReceive(b []byte) ([]byte, error) {
	if t.drop(t.sendProb) {
		t.met.ClientDropped("send")
		if t.log != nil {
			t.log.Debug("simulated send-side drop", nil)
		}
		return nil, nil
	}

	if _, err := t.conn.Write(b); err != nil {
		return nil, ErrDial.Error(err)
	}
	t.met.ClientSent()

	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, ErrDial.Error(err)
	}

	buf := make([]byte, protocol.MaxDatagramSize)
	n, err := t.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrTimeout.Error(err)
		}
		return nil, ErrDial.Error(err)
	}

	if t.drop(t.recvProb) {
		t.met.ClientDropped("recv")
		if t.log != nil {
			t.log.Debug("simulated receive-side drop", nil)
		}
		return nil, nil
	}

	t.met.ClientReceived()
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

// ListenForCallback blocks for a single server-initiated monitor callback
// datagram, up to deadline. It shares the same socket as SendAndReceive: the
// client either issues a request or listens for a callback at a time, never
// both concurrently.
func (t *Transport) ListenForCallback(deadline time.Time) ([]byte, error) {
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return nil, ErrDial.Error(err)
	}

	buf := make([]byte, protocol.MaxDatagramSize)
	n, err := t.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrTimeout.Error(err)
		}
		return nil, ErrDial.Error(err)
	}

	if t.drop(t.recvProb) {
		t.met.ClientDropped("recv")
		return nil, nil
	}

	t.met.ClientReceived()
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

// Close releases the underlying socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}
