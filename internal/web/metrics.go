package web

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's collectors on a private registry, so several
// servers can coexist in one process (tests, the serverless handler).
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	postsLoaded   prometheus.Gauge
	searchResults prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "midnight",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		postsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "midnight",
			Name:      "posts_loaded",
			Help:      "Number of posts in the current store snapshot.",
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "midnight",
			Name:      "search_results",
			Help:      "Posts matched by non-empty searches.",
			Buckets:   []float64{0, 1, 3, 10, 30, 100},
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.postsLoaded,
		m.searchResults,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) PostsLoaded(n int) {
	m.postsLoaded.Set(float64(n))
}

func (m *Metrics) ObserveSearch(results int) {
	m.searchResults.Observe(float64(results))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument counts requests by the pattern the mux matched.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
