// Package health serves the standard gRPC health protocol and reports the sync phase of the
// indexer as the serving status.
package health

import (
	"context"
	"errors"
	"net"

	"github.com/goodnatureofminers/blockindexer/internal/indexer"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpcHealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service reported alongside the overall "" service.
const ServiceName = "blockindexer.Indexer"

type Server struct {
	grpcServer *grpc.Server
	health     *grpcHealth.Server
	logger     *zap.Logger
}

func NewServer(logger *zap.Logger) *Server {
	unary := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	stream := []grpc.StreamServerInterceptor{
		grpcRecovery.StreamServerInterceptor(),
		grpcCtxTags.StreamServerInterceptor(),
		grpcPrometheus.StreamServerInterceptor,
		grpcZap.StreamServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(unary...)),
		grpc.StreamInterceptor(grpcMiddleware.ChainStreamServer(stream...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()

	hs := grpcHealth.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	grpcPrometheus.Register(grpcServer)

	s := &Server{grpcServer: grpcServer, health: hs, logger: logger.Named("health")}
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// ObservePhase matches the SyncController phase-change hook signature.
func (s *Server) ObservePhase(from, to indexer.Phase) {
	status := statusFor(to)
	s.setStatus(status)
	s.logger.Debug("health status changed",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("status", status.String()),
	)
}

func statusFor(phase indexer.Phase) healthpb.HealthCheckResponse_ServingStatus {
	switch phase {
	case indexer.PhaseHistorical, indexer.PhaseLive:
		return healthpb.HealthCheckResponse_SERVING
	default:
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
}

func (s *Server) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve blocks until ctx is done or the listener fails, then stops the server gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("Shutting down gRPC health server")
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		<-errCh
		return nil
	}
}
