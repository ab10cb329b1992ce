// Package promessofx wires promesso into go.uber.org/fx applications.
//
//	fx.New(
//	    fx.Provide(newZapLogger),
//	    promessofx.Module,
//	    promessofx.Server(":8080"),
//	    fx.Invoke(registerRoutes), // func(r promesso.Router) { ... }
//	).Run()
//
// A *zap.Logger and a prometheus.Registerer are used if the application
// provides them.
package promessofx

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/augustoroman/promesso"
	"github.com/augustoroman/promesso/metrics"
	"github.com/augustoroman/promesso/sinks"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides *promesso.Loggers, *metrics.Collector, *promesso.Compiler
// and promesso.Router.
var Module = fx.Options(
	fx.Provide(ProvideLoggers),
	fx.Provide(ProvideMetrics),
	fx.Provide(ProvideCompiler),
	fx.Provide(ProvideRouter),
)

type loggerDeps struct {
	fx.In
	Logger *zap.Logger `optional:"true"`
}

// ProvideLoggers logs to the application's zap logger, or to the
// process-wide promesso sinks when there is none.
func ProvideLoggers(d loggerDeps) *promesso.Loggers {
	if d.Logger == nil {
		return promesso.DefaultLoggers()
	}
	return promesso.NewLoggers(sinks.Zap(d.Logger))
}

type metricsDeps struct {
	fx.In
	Registerer prometheus.Registerer `optional:"true"`
}

// ProvideMetrics creates a collector registered with the application's
// registerer, if any.
func ProvideMetrics(d metricsDeps) *metrics.Collector {
	return metrics.New(d.Registerer)
}

// ProvideCompiler creates the compiler shared by all routes.
func ProvideCompiler(l *promesso.Loggers, m *metrics.Collector) *promesso.Compiler {
	return promesso.New(promesso.WithLoggers(l), promesso.WithObserver(m))
}

// ProvideRouter creates a router that logs every request.
func ProvideRouter(c *promesso.Compiler) promesso.Router {
	r := promesso.NewRouter(c)
	r.Use(c.LogRequests())
	return r
}

type serverDeps struct {
	fx.In
	Router  promesso.Router
	Loggers *promesso.Loggers
}

// Server serves the router on addr for the lifetime of the application.
func Server(addr string) fx.Option {
	return fx.Invoke(func(lc fx.Lifecycle, d serverDeps) {
		srv := &http.Server{
			Addr:         addr,
			Handler:      d.Router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				ln, err := net.Listen("tcp", addr)
				if err != nil {
					return err
				}
				d.Loggers.Log("server starting", "addr", ln.Addr().String())
				go func() {
					if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
						d.Loggers.Error("server failed", "err", err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				d.Loggers.Log("server stopping", "addr", addr)
				return srv.Shutdown(ctx)
			},
		})
	})
}
