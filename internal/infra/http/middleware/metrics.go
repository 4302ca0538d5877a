package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "creator_deals"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

var (
	requests = counter("http_requests_total", "HTTP requests by route and status", "method", "route", "status")

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		// a geração por IA fica na casa das dezenas de segundos
		Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "route"})

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Requests being served",
	})

	transitions   = counter("outreach_transitions_total", "Accepted outreach status transitions", "action")
	followUps     = counter("followups_sent_total", "Follow-up jobs handled by the worker", "result")
	generations   = counter("ai_generations_total", "AI generation requests", "kind", "result")
	integrationEr = counter("integration_errors_total", "Failures calling SMTP, OpenAI or the broker", "service")
)

// Metrics registra contagem e latência por padrão de rota do chi.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		requestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// routePattern evita um label por ID (/outreaches/{id}).
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordTransition(action string) { transitions.WithLabelValues(action).Inc() }

func RecordFollowUp(result string) { followUps.WithLabelValues(result).Inc() }

func RecordGeneration(kind, result string) { generations.WithLabelValues(kind, result).Inc() }

func RecordIntegrationError(service string) { integrationEr.WithLabelValues(service).Inc() }
