package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/kickstats/internal/config"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
)

// Runtime owns the process-wide tracing, profiling and debug endpoints.
type Runtime struct {
	logger       *logging.Logger
	stopTracing  func(context.Context) error
	profiler     *pyroscope.Profiler
	pprofSrv     *http.Server
	pprofBoundTo string
}

// Start enables whatever cfg turns on. On error everything already started is stopped.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rt := &Runtime{logger: logger, stopTracing: startTracing(cfg, logger)}

	profiler, err := startProfiler(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.profiler = profiler

	srv, ln, err := startPprof(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.pprofSrv = srv
	if ln != nil {
		rt.pprofBoundTo = ln.Addr().String()
	}

	return rt, nil
}

// PprofAddr is the bound debug address, empty when pprof is off.
func (r *Runtime) PprofAddr() string {
	return r.pprofBoundTo
}

// Shutdown stops the debug server, then the profiler, then flushes traces.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error

	if r.pprofSrv != nil {
		if err := r.pprofSrv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown pprof server: %w", err))
		} else {
			r.logger.Info("pprof server stopped")
		}
		r.pprofSrv = nil
	}

	if r.profiler != nil {
		if err := r.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
		r.profiler = nil
	}

	if r.stopTracing != nil {
		if err := r.stopTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
		r.stopTracing = nil
	}

	return errors.Join(errs...)
}
