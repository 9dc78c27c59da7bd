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

// Package server implements the server-side ServerTransport of spec §4.3: a
// single bound UDP socket, a bounded worker pool dispatching each datagram to
// a Handler, directional loss simulation, and SendTo for both replies and
// monitor callbacks.
package server

import (
	"context"
	"math/rand"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	liblog "github.com/nabbar/rfas/logger"
	logtps "github.com/nabbar/rfas/logger/types"
	libmet "github.com/nabbar/rfas/metrics"
	"github.com/nabbar/rfas/protocol"
)

// Handler processes one inbound datagram and returns the reply to send back
// (nil to send nothing, e.g. a simulated drop already handled upstream).
// shutdown, when true, tells Serve to send resp and then stop accepting new
// datagrams — the distinguished SHUTDOWN termination of spec §4.3.
type Handler func(b []byte, addr net.Addr) (resp []byte, shutdown bool)

// Transport is a UDP-backed ServerTransport bound to a single local address.
type Transport struct {
	conn     *net.UDPConn
	workers  int
	sendProb float64
	recvProb float64
	rnd      *rand.Rand
	log      liblog.Logger
	met      *libmet.Registry
}

// New binds listenAddr ("host:port", host may be empty for all interfaces).
// workers bounds the number of datagrams processed concurrently.
func New(listenAddr string, workers int, sendProb, recvProb float64, log liblog.Logger, met *libmet.Registry) (*Transport, error) {
	laddr, err := net.ResolveUDPAddr("udp", listenAddr)
	if err != nil {
		return nil, ErrListen.Error(err)
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, ErrListen.Error(err)
	}

	if workers <= 0 {
		workers = 1
	}

	return &Transport{
		conn:     conn,
		workers:  workers,
		sendProb: sendProb,
		recvProb: recvProb,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
		met:      met,
	}, nil
}

// LocalAddr returns the bound local address, useful when listenAddr used an
// ephemeral port.
func (t *Transport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}

func (t *Transport) drop(prob float64) bool {
	if prob <= 0 {
		return false
	}
	return t.rnd.Float64() < prob
}

// SendTo writes b to addr, applying the server's send-side loss simulation.
// Implements monitor.Sender.
func (t *Transport) SendTo(addr net.Addr, b []byte) error {
	if t.drop(t.sendProb) {
		t.met.ServerDropped("send")
		return nil
	}

	if _, err := t.conn.WriteTo(b, addr); err != nil {
		return ErrSend.Error(err)
	}
	t.met.ServerSent()
	return nil
}

// Serve blocks, dispatching each inbound datagram to handle on a bounded pool
// of goroutines, until ctx is canceled or a Handler invocation signals
// shutdown. It returns nil on either clean termination path.
func (t *Transport) Serve(ctx context.Context, handle Handler) error {
	grp, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, t.workers)
	stopped := make(chan struct{})
	var stopOnce sync.Once
	stop := func() { stopOnce.Do(func() { close(stopped) }) }

	buf := make([]byte, protocol.MaxDatagramSize)

	for {
		select {
		case <-ctx.Done():
			stop()
			return grp.Wait()
		case <-stopped:
			return grp.Wait()
		default:
		}

		if err := t.conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
			return ErrListen.Error(err)
		}

		n, addr, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-ctx.Done():
				return grp.Wait()
			default:
				return ErrListen.Error(err)
			}
		}

		if t.drop(t.recvProb) {
			t.met.ServerDropped("recv")
			continue
		}
		t.met.ServerReceived()

		data := make([]byte, n)
		copy(data, buf[:n])
		from := addr

		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return grp.Wait()
		}

		grp.Go(func() error {
			defer func() { <-sem }()

			resp, shutdown := handle(data, from)
			if resp != nil {
				if err := t.SendTo(from, resp); err != nil && t.log != nil {
					t.log.Warning("reply delivery failed", map[string]interface{}{
						logtps.FieldAddr: from.String(), logtps.FieldError: err.Error(),
					})
				}
			}
			if shutdown {
				stop()
			}
			return nil
		})
	}
}

// Close releases the underlying socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}
