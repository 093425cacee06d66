package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/weegigs/tally-go/support"
)

type Application struct {
	Config  support.Config
	Log     *zerolog.Logger
	Handler http.Handler
	Metrics *support.Metrics
	Tracing *support.Tracing
}

func NewApplication(cfg support.Config, log *zerolog.Logger, handler http.Handler, metrics *support.Metrics, tracing *support.Tracing) *Application {
	return &Application{
		Config:  cfg,
		Log:     log,
		Handler: handler,
		Metrics: metrics,
		Tracing: tracing,
	}
}

func (app *Application) Run(ctx context.Context) error {
	app.Log.Info().Msg("starting")

	ln, err := net.Listen("tcp", app.Config.Address())
	if err != nil {
		return errors.Wrapf(err, "cannot listen on %q", app.Config.Address())
	}

	return app.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is done, then drains in-flight
// requests within the configured shutdown timeout.
func (app *Application) Serve(ctx context.Context, ln net.Listener) error {
	servers := []*http.Server{app.newServer(app.Handler)}
	listeners := []net.Listener{ln}

	if app.Config.MetricsAddr != "" {
		mln, err := net.Listen("tcp", app.Config.MetricsAddr)
		if err != nil {
			_ = ln.Close()
			return errors.Wrapf(err, "cannot listen for metrics on %q", app.Config.MetricsAddr)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		servers = append(servers, app.newServer(mux))
		listeners = append(listeners, mln)
		app.Log.Info().Str("addr", mln.Addr().String()).Msg("serving metrics")
	}

	failures := make(chan error, len(servers))
	for i := range servers {
		go func(s *http.Server, l net.Listener) {
			if err := s.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				failures <- err
			}
		}(servers[i], listeners[i])
	}

	app.Log.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", ln.Addr().(*net.TCPAddr).Port)).
		Str("trace_exporter", app.Tracing.Exporter).
		Msg("server running")

	var failure error
	select {
	case <-ctx.Done():
	case failure = <-failures:
		app.Log.Error().Err(failure).Msg("server error")
	}

	app.Log.Info().Msg("stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
	defer cancel()

	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil && failure == nil {
			failure = errors.Wrap(err, "shutdown")
		}
	}

	app.Log.Info().Msg("server stopped")

	return failure
}

func (app *Application) newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		IdleTimeout:  10 * time.Minute,
		ErrorLog:     stdLogger(app.Log),
	}
}
