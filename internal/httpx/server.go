package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type Server struct{ *http.Server }

func NewServer(addr string, h http.Handler) *Server {
	return &Server{Server: &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}}
}

// Run serves until ctx is cancelled, then shuts down with a 5s grace period.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.ListenAndServe() }()
	select {
	case <-ctx.Done():
		ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx2)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Health exposes the standard gRPC health service so orchestrators can probe
// the process alongside the HTTP API.
type Health struct {
	addr   string
	srv    *grpc.Server
	status *health.Server
	log    *zap.Logger
}

func NewHealth(addr string, log *zap.Logger) *Health {
	if log == nil {
		log = zap.NewNop()
	}
	s := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, hs)
	return &Health{addr: addr, srv: s, status: hs, log: log.Named("health")}
}

// SetServing flips the overall status reported to probes.
func (h *Health) SetServing(ok bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if ok {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.status.SetServingStatus("", st)
}

func (h *Health) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return err
	}
	return h.Serve(ctx, lis)
}

func (h *Health) Serve(ctx context.Context, lis net.Listener) error {
	h.SetServing(true)
	h.log.Info("grpc health listening", zap.String("addr", lis.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- h.srv.Serve(lis) }()
	select {
	case <-ctx.Done():
		h.status.Shutdown()
		h.srv.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}
