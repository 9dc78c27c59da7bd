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

// Package metrics exposes the Prometheus collectors shared by the client and
// server transports and the server's at-most-once invocation strategy. Wiring a
// metrics endpoint is observability, not a protocol feature — it never
// changes wire behavior.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the collectors this module registers. A nil *Registry is
// valid everywhere it is consulted: every method is a no-op on a nil receiver
// so metrics remain strictly optional.
type Registry struct {
	DatagramsSent    *prometheus.CounterVec
	DatagramsDropped *prometheus.CounterVec
	DatagramsRecv    *prometheus.CounterVec
	ReplyCacheHits   prometheus.Counter
	ReplyCacheMisses prometheus.Counter
	Subscriptions    prometheus.Gauge
}

// New builds and registers a Registry against reg. Pass prometheus.NewRegistry()
// for an isolated registry (tests), or prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Registry {
	m := &Registry{
		DatagramsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rfas_datagrams_sent_total",
			Help: "Datagrams handed to the socket for sending, by direction.",
		}, []string{"side"}),
		DatagramsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rfas_datagrams_dropped_total",
			Help: "Datagrams dropped by simulated loss, by direction.",
		}, []string{"side", "phase"}),
		DatagramsRecv: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rfas_datagrams_received_total",
			Help: "Datagrams successfully read from the socket, by direction.",
		}, []string{"side"}),
		ReplyCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfas_reply_cache_hits_total",
			Help: "At-most-once reply cache hits (duplicate requestId).",
		}),
		ReplyCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfas_reply_cache_misses_total",
			Help: "At-most-once reply cache misses (first sight of requestId).",
		}),
		Subscriptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rfas_monitor_subscriptions",
			Help: "Live monitor subscriptions across all paths.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.DatagramsSent, m.DatagramsDropped, m.DatagramsRecv,
			m.ReplyCacheHits, m.ReplyCacheMisses, m.Subscriptions)
	}

	return m
}

func (m *Registry) sentInc(side string) {
	if m == nil {
		return
	}
	m.DatagramsSent.WithLabelValues(side).Inc()
}

func (m *Registry) droppedInc(side, phase string) {
	if m == nil {
		return
	}
	m.DatagramsDropped.WithLabelValues(side, phase).Inc()
}

func (m *Registry) recvInc(side string) {
	if m == nil {
		return
	}
	m.DatagramsRecv.WithLabelValues(side).Inc()
}

// ClientSent records a datagram the client handed to the socket.
func (m *Registry) ClientSent() { m.sentInc("client") }

// ClientDropped records a datagram dropped by simulated loss on the client side.
func (m *Registry) ClientDropped(phase string) { m.droppedInc("client", phase) }

// ClientReceived records a datagram the client read from the socket.
func (m *Registry) ClientReceived() { m.recvInc("client") }

// ServerSent records a datagram the server handed to the socket.
func (m *Registry) ServerSent() { m.sentInc("server") }

// ServerDropped records a datagram dropped by simulated loss on the server side.
func (m *Registry) ServerDropped(phase string) { m.droppedInc("server", phase) }

// ServerReceived records a datagram the server read from the socket.
func (m *Registry) ServerReceived() { m.recvInc("server") }

// ReplyCacheHit records an at-most-once duplicate suppression.
func (m *Registry) ReplyCacheHit() {
	if m == nil {
		return
	}
	m.ReplyCacheHits.Inc()
}

// ReplyCacheMiss records a first-sight dispatch to FileService.
func (m *Registry) ReplyCacheMiss() {
	if m == nil {
		return
	}
	m.ReplyCacheMisses.Inc()
}

// SetSubscriptions reports the current live subscription count.
func (m *Registry) SetSubscriptions(n int) {
	if m == nil {
		return
	}
	m.Subscriptions.Set(float64(n))
}
