package promessofx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/augustoroman/promesso"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestModule(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := prometheus.NewRegistry()

	var router promesso.Router
	app := fxtest.New(t,
		fx.Supply(zap.New(core)),
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module,
		fx.Invoke(func(r promesso.Router) {
			r.Get("/hello/:name", func(req *promesso.Request) (any, error) {
				return "hello " + req.Param("name"), nil
			})
		}),
		fx.Populate(&router),
	)
	app.RequireStart()
	defer app.RequireStop()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/hello/fx", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello fx", w.Body.String())

	require.Equal(t, 1, logs.FilterMessage("request").Len())
	n, err := testutil.GatherAndCount(reg, "promesso_responses_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestModuleWithoutOptionalDeps(t *testing.T) {
	var loggers *promesso.Loggers
	app := fxtest.New(t, Module, fx.Populate(&loggers))
	app.RequireStart().RequireStop()
	assert.Same(t, promesso.DefaultLoggers(), loggers)
}

func TestServerLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fxtest.New(t,
		fx.Supply(zap.New(core)),
		Module,
		Server("127.0.0.1:0"),
	)
	app.RequireStart()
	app.RequireStop()

	assert.Equal(t, 1, logs.FilterMessage("server starting").Len())
	assert.Equal(t, 1, logs.FilterMessage("server stopping").Len())
}
