package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/debtwatch/backend/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
	advice  *services.AdviceService
}

func NewReportHandler(reports *services.ReportService, advice *services.AdviceService) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		advice:  advice,
	}
}

// GetReport rebuilds and returns the full analytics report
// @Summary Debt analytics report
// @Description Totals, monthly buckets, trend, forecast, chart series, category/weekday/size buckets, payoff projection
// @Tags report
// @Produce json
// @Success 200 {object} models.Report
// @Failure 502 {object} services.ErrorResponse
// @Router /report [get]
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.BuildReport(r.Context())
	if err != nil {
		services.SendErrorResponse(w, "Storage unavailable", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GetAdvice returns recommendation cards for the current report
// @Summary Debt advice
// @Tags report
// @Produce json
// @Success 200 {array} models.AdviceCard
// @Failure 502 {object} services.ErrorResponse
// @Router /report/advice [get]
func (h *ReportHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.BuildReport(r.Context())
	if err != nil {
		services.SendErrorResponse(w, "Storage unavailable", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.advice.Advise(report))
}
