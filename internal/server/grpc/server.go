// Package grpc exposes the standard gRPC health service so that load
// balancers and orchestrators can probe FocusFlow next to its HTTP surface.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const defaultProbeInterval = 15 * time.Second

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

type HealthServer struct {
	address       string
	logger        logging.Logger
	ping          PingFunc
	probeInterval time.Duration
	health        *health.Server
}

func NewHealthServer(a string, l logging.Logger, ping PingFunc) *HealthServer {
	return &HealthServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		ping:          ping,
		probeInterval: defaultProbeInterval,
		health:        health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)

	go func() {
		ticker := time.NewTicker(s.probeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.probe(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// probe sets the overall serving status from the store's reachability.
func (s *HealthServer) probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.ping != nil {
		if err := s.ping(ctx); err != nil {
			s.logger.Warn(ctx, "store unreachable", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}
