package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	m := NewHTTPMetrics("portfolio-service")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/skill/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/skill", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	for _, path := range []string{"/skill/1", "/skill/2", "/skill"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("portfolio-service", "GET", "/skill/{id}", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("portfolio-service", "GET", "/skill", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.statuses.WithLabelValues("portfolio-service", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statuses.WithLabelValues("portfolio-service", "2xx")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	m := NewHTTPMetrics("svc")
	m.requests.WithLabelValues("svc", "GET", "/", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestStatusCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2xx", statusCategory(204))
	assert.Equal(t, "4xx", statusCategory(401))
	assert.Equal(t, "5xx", statusCategory(503))
	assert.Equal(t, "", statusCategory(302))
}
