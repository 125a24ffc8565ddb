package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/azure/market-research-agent/internal/monitoring"
	"github.com/azure/market-research-agent/internal/reports"
	"github.com/azure/market-research-agent/internal/scheduler"
	"github.com/azure/market-research-agent/internal/storage"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handler serves the dashboard API
type Handler struct {
	monitoring *monitoring.Service
	scheduler  *scheduler.Service
	// ctx outlives individual requests; background research cycles run under it
	ctx context.Context
}

// NewHandler creates a new dashboard API handler
func NewHandler(ctx context.Context, monitoringService *monitoring.Service, schedulerService *scheduler.Service) *Handler {
	return &Handler{
		monitoring: monitoringService,
		scheduler:  schedulerService,
		ctx:        ctx,
	}
}

type statusResponse struct {
	monitoring.Status
	Running bool `json:"running"`
}

type configRequest struct {
	APIKey          *string `json:"api_key"`
	IntervalSeconds *int    `json:"interval_seconds"`
	Industry        *string `json:"industry"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) currentStatus() statusResponse {
	return statusResponse{
		Status:  h.monitoring.Status(),
		Running: h.scheduler.Running(),
	}
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.Store().Snapshot().Trends)
}

func (h *Handler) competitors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.Store().Snapshot().Competitors)
}

func (h *Handler) sentiment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.Store().Snapshot().Sentiment)
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.Store().Snapshot().Alerts)
}

func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.Store().Snapshot().Reports)
}

func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.Store().Logs())
}

func (h *Handler) industries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Industries)
}

func (h *Handler) runResearch(w http.ResponseWriter, r *http.Request) {
	err := h.monitoring.StartResearch(h.ctx)
	switch {
	case errors.Is(err, monitoring.ErrMissingAPIKey):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, monitoring.ErrCycleInProgress):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusAccepted, messageResponse{Message: "Research cycle started"})
	}
}

func (h *Handler) startMonitoring(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.Start(); err != nil {
		if errors.Is(err, monitoring.ErrMissingAPIKey) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) stopMonitoring(w http.ResponseWriter, r *http.Request) {
	h.scheduler.Stop()
	writeJSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) updateConfig(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if req.Industry != nil {
		if err := h.monitoring.SetIndustry(*req.Industry); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	if req.APIKey != nil {
		h.monitoring.SetAPIKey(*req.APIKey)
	}

	if req.IntervalSeconds != nil {
		h.monitoring.SetInterval(*req.IntervalSeconds)
		h.scheduler.Reschedule()
	}

	writeJSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	report := h.monitoring.GenerateReport(r.Context())
	writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) downloadReportJSON(w http.ResponseWriter, r *http.Request) {
	report, ok := h.lookupReport(w, r)
	if !ok {
		return
	}

	data, err := reports.MarshalJSON(report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(reports.FileName(report, "json")))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) downloadReportPDF(w http.ResponseWriter, r *http.Request) {
	report, ok := h.lookupReport(w, r)
	if !ok {
		return
	}

	data, err := reports.RenderPDFBytes(report)
	if err != nil {
		logrus.Errorf("Failed to render report %s: %v", report.ID, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(reports.FileName(report, "pdf")))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) archivedReports(w http.ResponseWriter, r *http.Request) {
	names, err := h.monitoring.ArchivedReports(r.Context())
	if err != nil {
		writeArchiveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *Handler) downloadArchivedReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data, err := h.monitoring.ArchivedReport(r.Context(), vars["id"], vars["file"])
	if err != nil {
		writeArchiveError(w, err)
		return
	}

	w.Header().Set("Content-Type", storage.ContentType(vars["file"]))
	w.Header().Set("Content-Disposition", attachment(vars["file"]))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeArchiveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, monitoring.ErrArchiveDisabled):
		writeError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, monitoring.ErrInvalidArchiveName):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	default:
		logrus.Errorf("Report archive request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (h *Handler) lookupReport(w http.ResponseWriter, r *http.Request) (models.Report, bool) {
	id := mux.Vars(r)["id"]
	report, ok := h.monitoring.Store().Report(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("report %s not found", id))
	}
	return report, ok
}

func attachment(filename string) string {
	return fmt.Sprintf(`attachment; filename="%s"`, filename)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
