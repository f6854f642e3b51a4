package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	reg := New()
	r := chi.NewRouter()
	r.Use(reg.Middleware)
	r.Get("/animals/{animalID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a-1", "a-2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(reg.requests.WithLabelValues("GET", "/animals/{animalID}", "404"))
	assert.Equal(t, 2.0, got)
}

func TestBirthObserver(t *testing.T) {
	reg := New()

	reg.BirthRecorded(2)
	reg.BirthRecorded(0)
	reg.BirthRejected("duplicate_key")

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.births))
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.calves))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.rejections.WithLabelValues("duplicate_key")))
}

func TestHandler_ServesExposition(t *testing.T) {
	reg := New()
	reg.BirthRecorded(1)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "cattle_births_recorded_total 1"))
}
