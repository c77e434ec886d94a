package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics считает запросы и длительность обработки по маршруту и статусу.
// Лейбл route берётся из шаблона chi (после маршрутизации), а не из сырого
// пути, чтобы не плодить кардинальность на параметрах.
func Metrics(reg prometheus.Registerer) Middleware {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Количество обработанных HTTP-запросов.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Длительность обработки HTTP-запросов.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	if reg != nil {
		reg.MustRegister(requests, duration)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			dur := time.Since(start)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			duration.WithLabelValues(r.Method, route).Observe(dur.Seconds())
		})
	}
}
