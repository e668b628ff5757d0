package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Total number of lead submissions accepted",
		},
		[]string{"kind"},
	)

	verificationCodesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verification_codes_sent_total",
			Help: "Total number of verification codes issued",
		},
	)

	rateLimitRefusals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_refusals_total",
			Help: "Total number of requests refused by the rate limiter",
		},
		[]string{"action"},
	)

	captchaFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "captcha_failures_total",
			Help: "Total number of rejected captcha tokens",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadSubmission(kind string) {
	leadsSubmitted.WithLabelValues(kind).Inc()
}

func RecordVerificationCodeSent() {
	verificationCodesSent.Inc()
}

func RecordRateLimitRefusal(action string) {
	rateLimitRefusals.WithLabelValues(action).Inc()
}

func RecordCaptchaFailure() {
	captchaFailures.Inc()
}
