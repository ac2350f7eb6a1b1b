package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// AuthzDecisions cuenta cada evaluación de la capa de acceso.
	AuthzDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adoption_authz_decisions_total",
		Help: "Authorization decisions by check and outcome",
	}, []string{"check", "outcome", "reason"})

	ChatsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adoption_chats_started_total",
		Help: "Start-chat calls by result (created or reused)",
	}, []string{"result"})
	MessagesPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adoption_chat_messages_total",
		Help: "Total number of chat messages appended",
	})
	AnimalStatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adoption_animal_status_changes_total",
		Help: "Animal status transitions by target status",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AuthzDecisions,
		ChatsStarted,
		MessagesPosted,
		AnimalStatusChanges,
	)
}

// ObserveDecision registra una decisión de autorización. reason es "none" en Allow.
func ObserveDecision(check string, allowed bool, reason string) {
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	AuthzDecisions.WithLabelValues(check, outcome, reason).Inc()
}

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware registra métricas por ruta (patrón chi, no path crudo, para
// no explotar la cardinalidad con IDs).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := strconv.Itoa(statusOf(ww))
		HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func statusOf(ww chimw.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
