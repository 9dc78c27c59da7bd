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

// Package server ties the server-side pieces of the remote file access
// system together: the UDP ServerTransport, the InvocationStrategy
// (AtLeastOnce or AtMostOnce), the FileService operation handlers and the
// MonitorRegistry, behind one Service.
package server

import (
	"context"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nabbar/rfas/config"
	"github.com/nabbar/rfas/fileservice"
	invsrv "github.com/nabbar/rfas/invocation/server"
	liblog "github.com/nabbar/rfas/logger"
	logtps "github.com/nabbar/rfas/logger/types"
	libmet "github.com/nabbar/rfas/metrics"
	"github.com/nabbar/rfas/monitor"
	"github.com/nabbar/rfas/protocol"
	"github.com/nabbar/rfas/replycache"
	transportsrv "github.com/nabbar/rfas/transport/server"
)

// Service is the remote file access server named in spec §3.
type Service struct {
	transport *transportsrv.Transport
	strategy  invsrv.Strategy
	registry  *monitor.Registry
	fileSvc   *fileservice.Service
	log       liblog.Logger
	met       *libmet.Registry
}

// New binds a ServerTransport at cfg.ListenAddress and wires the FileService,
// MonitorRegistry and the configured InvocationStrategy around it.
func New(ctx context.Context, cfg config.Server, log liblog.Logger, met *libmet.Registry) (*Service, error) {
	tr, err := transportsrv.New(cfg.ListenAddress, cfg.Workers, cfg.SendLossProbability, cfg.RecvLossProbability, log, met)
	if err != nil {
		return nil, err
	}

	reg := monitor.New(tr, log)
	fsvc := fileservice.New(cfg.Root, reg, reg, log)

	var strat invsrv.Strategy
	switch cfg.Strategy {
	case config.StrategyAtMostOnce:
		strat = invsrv.NewAtMostOnce(fsvc, replycache.New(ctx, cfg.ReplyCacheTTL), met, log)
	default:
		strat = invsrv.NewAtLeastOnce(fsvc)
	}

	return &Service{
		transport: tr,
		strategy:  strat,
		registry:  reg,
		fileSvc:   fsvc,
		log:       log,
		met:       met,
	}, nil
}

// LocalAddr returns the bound local address.
func (s *Service) LocalAddr() net.Addr {
	return s.transport.LocalAddr()
}

// Serve blocks, dispatching every inbound datagram through the configured
// InvocationStrategy, until ctx is canceled or a SHUTDOWN request is
// processed.
func (s *Service) Serve(ctx context.Context) error {
	return s.transport.Serve(ctx, func(b []byte, addr net.Addr) ([]byte, bool) {
		req, err := protocol.UnmarshalRequest(b)
		if err != nil {
			if s.log != nil {
				s.log.Warning("undecodable request datagram", map[string]interface{}{logtps.FieldAddr: addr.String(), logtps.FieldError: err.Error()})
			}
			return protocol.MarshalResponse(protocol.GeneralErrorResponse(err.Error())), false
		}

		resp := s.strategy.Process(req, addr)
		return protocol.MarshalResponse(resp), resp.Status == protocol.StatusShutdown
	})
}

// ServeMetrics blocks, serving the Prometheus text exposition format on addr
// until ctx is canceled. Per SPEC_FULL.md §6, this is optional observability
// and does not participate in the wire protocol.
func ServeMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Close()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Close releases the underlying transport.
func (s *Service) Close() error {
	return s.transport.Close()
}
