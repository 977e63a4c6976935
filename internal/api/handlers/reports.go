package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/api/middleware"
	"github.com/finsight-app/finsight/internal/domain"
	"github.com/finsight-app/finsight/internal/store"
)

// ReportGenerator produces this month's spending report.
type ReportGenerator interface {
	Generate(ctx context.Context) (*domain.Report, error)
}

// ReportsHandler handles report-related endpoints.
type ReportsHandler struct {
	generator ReportGenerator
	reports   store.ReportStore
	log       zerolog.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(generator ReportGenerator, reports store.ReportStore, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{
		generator: generator,
		reports:   reports,
		log:       log,
	}
}

// GenerateReport handles POST /api/generate-report
func (h *ReportsHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.generator.Generate(r.Context())
	if err != nil {
		writeFailure(w, h.log, "Report generation failed", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}

// ListReports handles GET /api/reports
func (h *ReportsHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.ListReports(r.Context())
	if err != nil {
		writeFailure(w, h.log, "Failed to list reports", err)
		return
	}

	// Return array directly for frontend compatibility
	if reports == nil {
		reports = []*domain.Report{}
	}
	middleware.WriteJSON(w, http.StatusOK, reports)
}
