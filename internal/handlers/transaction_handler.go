package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/debtwatch/backend/internal/pipeline"
	"github.com/debtwatch/backend/internal/services"
)

const maxUploadBytes = 8 << 20 // 8 MB

type TransactionHandler struct {
	service   *services.TransactionService
	validator *services.ValidationHelper
}

func NewTransactionHandler(service *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// ImportCSV ingests a finance export
// @Summary Import a CSV export
// @Description Parse a bank/finance CSV export, keep debt-relevant rows and persist them idempotently
// @Tags transactions
// @Accept text/csv
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /transactions/import [post]
func (h *TransactionHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			services.SendErrorResponse(w, "Missing 'file' form field", http.StatusBadRequest, nil)
			return
		}
		defer file.Close()
		src = file
	}

	result, err := h.service.Import(r.Context(), src)
	if err != nil {
		services.SendErrorResponse(w, "Import failed", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"result":  result,
	})
}

// ListTransactions returns the persisted canonical transactions
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {array} models.Transaction
// @Failure 502 {object} services.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.List(r.Context())
	if err != nil {
		services.SendErrorResponse(w, "Storage unavailable", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txs)
}

// ViewTransactions returns one page of the transaction table
// @Summary Paged transaction view
// @Description Filter, search, sort and paginate the classified transactions
// @Tags transactions
// @Produce json
// @Param filter query string false "all | given | returned"
// @Param q query string false "substring match on the comment"
// @Param sort query string false "asc | desc"
// @Param page query int false "page number, 1-based"
// @Success 200 {object} pipeline.ViewPage
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /transactions/view [get]
func (h *TransactionHandler) ViewTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := pipeline.ViewState{
		Filter: q.Get("filter"),
		Search: q.Get("q"),
		Sort:   q.Get("sort"),
	}
	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			services.SendErrorResponse(w, "Invalid page parameter", http.StatusBadRequest, nil)
			return
		}
		state.Page = page
	}

	if err := h.validator.ValidateStruct(&state); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	page, err := h.service.View(r.Context(), state)
	if err != nil {
		services.SendErrorResponse(w, "Storage unavailable", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

// ExportTransactions streams the classified set
// @Summary Export transactions
// @Tags transactions
// @Produce json
// @Produce text/csv
// @Param format query string false "csv | json (default json)"
// @Success 200
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="debt-transactions.csv"`)
		if err := h.service.ExportCSV(r.Context(), w); err != nil {
			services.SendErrorResponse(w, "Export failed", http.StatusBadGateway, nil)
		}
	case "json":
		classified, err := h.service.Classified(r.Context())
		if err != nil {
			services.SendErrorResponse(w, "Storage unavailable", http.StatusBadGateway, nil)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(classified)
	default:
		services.SendErrorResponse(w, "Unsupported export format", http.StatusBadRequest, nil)
	}
}
