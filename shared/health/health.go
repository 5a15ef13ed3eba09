// Package health reports service readiness over HTTP and the gRPC health protocol.
package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vasapolrittideah/portfolio-api/shared/respond"
)

// Probe checks one dependency, typically the database.
type Probe func(ctx context.Context) error

// Checker runs a probe and publishes the result to HTTP and gRPC health endpoints.
type Checker struct {
	probe   Probe
	timeout time.Duration
	logger  *zerolog.Logger
	grpc    *health.Server
	healthy atomic.Bool
}

// NewChecker creates a Checker. The service starts as not serving until the first probe succeeds.
func NewChecker(probe Probe, timeout time.Duration, logger *zerolog.Logger) *Checker {
	c := &Checker{
		probe:   probe,
		timeout: timeout,
		logger:  logger,
		grpc:    health.NewServer(),
	}
	c.grpc.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return c
}

// RegisterGRPC registers the gRPC health service on grpcServer.
func (c *Checker) RegisterGRPC(grpcServer *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(grpcServer, c.grpc)
}

// Check runs the probe once and records the result.
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.probe(ctx)
	c.set(err == nil)
	if err != nil {
		c.logger.Warn().Err(err).Msg("health probe failed")
	}

	return err
}

// Run probes every interval until ctx is done, then marks the service as not serving.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_ = c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			c.Shutdown()
			return
		case <-ticker.C:
			_ = c.Check(ctx)
		}
	}
}

// Healthy reports the result of the last probe.
func (c *Checker) Healthy() bool {
	return c.healthy.Load()
}

// Shutdown marks every service as not serving.
func (c *Checker) Shutdown() {
	c.healthy.Store(false)
	c.grpc.Shutdown()
}

// ServeHTTP probes synchronously and answers 200 or 503.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := c.Check(r.Context()); err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *Checker) set(ok bool) {
	c.healthy.Store(ok)

	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if ok {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	c.grpc.SetServingStatus("", status)
}
