package middleware

import (
	"net/http"
	"strconv"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taskhub_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "status"})

	errorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taskhub_errors_total",
		Help: "Total number of HTTP requests that ended in an error status.",
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(errorCounter)
}

// Metrics counts requests and error responses by method and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := strconv.Itoa(ww.Status())
		requestCounter.WithLabelValues(r.Method, status).Inc()
		if ww.Status() >= 400 {
			errorCounter.WithLabelValues(r.Method, status).Inc()
		}
	})
}
