package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/augustoroman/promesso"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	quiet := promesso.NewLoggers(func(string, ...any) {}, func(string, ...any) {})
	c := promesso.New(promesso.WithLoggers(quiet), promesso.WithObserver(m))

	ok := c.MustEndpoint(func(req *promesso.Request) (any, error) { return "ok", nil })
	missing := c.MustEndpoint(func(req *promesso.Request) (any, error) { return nil, promesso.ErrNotFound })
	broken := c.MustEndpoint(func(req *promesso.Request) (any, error) { return nil, errors.New("x") })

	for i := 0; i < 3; i++ {
		ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	}
	missing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/", nil))
	broken.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.responses.WithLabelValues("none", "200", "GET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.responses.WithLabelValues("domain", "404", "DELETE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.responses.WithLabelValues("generic", "500", "POST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("NOT_FOUND")))

	n, err := testutil.GatherAndCount(reg, "promesso_responses_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestNilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() { New(nil) })
	assert.NotPanics(t, func() { New(nil) })
}
