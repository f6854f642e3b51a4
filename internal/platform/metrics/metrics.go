// Package metrics expone contadores Prometheus en un registry propio (no el global).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	births     prometheus.Counter
	calves     prometheus.Counter
	rejections *prometheus.CounterVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		reg: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		births: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cattle_births_recorded_total",
			Help: "Reproduction events closed with a birth.",
		}),
		calves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cattle_calves_registered_total",
			Help: "Calves created as animals by birth recording.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cattle_birth_rejections_total",
			Help: "Birth recordings rejected, by error kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(r.requests, r.duration, r.births, r.calves, r.rejections)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer para tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// BirthRecorded y BirthRejected implementan reproduction.Observer.
func (r *Registry) BirthRecorded(calves int) {
	r.births.Inc()
	if calves > 0 {
		r.calves.Add(float64(calves))
	}
}

func (r *Registry) BirthRejected(kind string) {
	r.rejections.WithLabelValues(kind).Inc()
}

// Middleware usa el patrón de ruta de chi para no explotar la cardinalidad con ids.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		route := routePattern(req)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.requests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.duration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(req *http.Request) string {
	if rc := chi.RouteContext(req.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
