package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
)

func TestMetrics_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middlewarectx.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Handler)
	r.Get("/rooms/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/rooms/1", "/rooms/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(reg, "hostel_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per route and status")

	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != "hostel_http_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" && l.GetValue() == "/rooms/{id}" {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.InDelta(t, 2.0, total, 0.0001)
}

func TestMetrics_Handler_UnmatchedRoutesShareOneLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middlewarectx.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Handler)
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/wp-admin", "/random/1", "/random/2", "/.env"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	count, err := testutil.GatherAndCount(reg, "hostel_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "unknown paths must not create new series")

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "hostel_http_requests_total" {
			continue
		}
		m := f.GetMetric()[0]
		for _, l := range m.GetLabel() {
			if l.GetName() == "route" {
				assert.Equal(t, middlewarectx.UnmatchedRoute, l.GetValue())
			}
		}
		assert.InDelta(t, 4.0, m.GetCounter().GetValue(), 0.0001)
	}
}
