package api

import (
	"net/http"
	"time"

	"github.com/azure/market-research-agent/internal/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ServiceName names the server in traces
const ServiceName = "market-research-agent"

// NewRouter registers the dashboard routes and wraps them with tracing
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogger)

	router.HandleFunc("/health", h.health).Methods("GET")
	router.Handle("/metrics", metrics.Handler(gatherer)).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", h.status).Methods("GET")
	api.HandleFunc("/trends", h.trends).Methods("GET")
	api.HandleFunc("/competitors", h.competitors).Methods("GET")
	api.HandleFunc("/sentiment", h.sentiment).Methods("GET")
	api.HandleFunc("/alerts", h.alerts).Methods("GET")
	api.HandleFunc("/logs", h.logs).Methods("GET")
	api.HandleFunc("/industries", h.industries).Methods("GET")

	api.HandleFunc("/research", h.runResearch).Methods("POST")
	api.HandleFunc("/monitoring/start", h.startMonitoring).Methods("POST")
	api.HandleFunc("/monitoring/stop", h.stopMonitoring).Methods("POST")
	api.HandleFunc("/config", h.updateConfig).Methods("PUT")

	api.HandleFunc("/reports", h.reports).Methods("GET")
	api.HandleFunc("/reports", h.generateReport).Methods("POST")
	api.HandleFunc("/reports/{id}/json", h.downloadReportJSON).Methods("GET")
	api.HandleFunc("/reports/{id}/pdf", h.downloadReportPDF).Methods("GET")

	api.HandleFunc("/archive", h.archivedReports).Methods("GET")
	api.HandleFunc("/archive/{id}/{file}", h.downloadArchivedReport).Methods("GET")

	return otelhttp.NewHandler(router, ServiceName)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
