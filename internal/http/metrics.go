package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kjunlab/authfront/internal/http/middlewares"
)

var (
	metricsOnce sync.Once
	metricsErr  error

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	loginAttemptsTotal  *prometheus.CounterVec
)

// RegisterMetrics inicializa las métricas HTTP y de login y devuelve el
// handler para /metrics. Idempotente.
func RegisterMetrics(registry prometheus.Registerer) (http.Handler, error) {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		loginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Intentos de login por proveedor y resultado",
		}, []string{"provider", "result"})

		for _, c := range []prometheus.Collector{
			httpRequestsTotal, httpRequestDuration, loginAttemptsTotal,
		} {
			if err := registry.Register(c); err != nil {
				metricsErr = err
				return
			}
		}
	})

	if metricsErr != nil {
		return nil, metricsErr
	}
	return promhttp.Handler(), nil
}

// ObserveLogin registra un intento de login.
// result: "redirect" | "token" | "error".
func ObserveLogin(provider, result string) {
	if loginAttemptsTotal != nil {
		loginAttemptsTotal.WithLabelValues(provider, result).Inc()
	}
}

// WithMetrics captura contadores y latencia por ruta. Usa el patrón de
// ruta de chi (no el path crudo) para acotar la cardinalidad.
func WithMetrics() middlewares.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpRequestsTotal == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &metricsRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					path = p
				}
			}

			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (m *metricsRecorder) WriteHeader(code int) {
	if !m.wroteHeader {
		m.status = code
		m.wroteHeader = true
	}
	m.ResponseWriter.WriteHeader(code)
}
