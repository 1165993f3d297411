package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/pipeline"
	"github.com/debtwatch/backend/internal/services"
	"github.com/debtwatch/backend/internal/storage"
	"github.com/stretchr/testify/assert"
)

const csvUpload = "date;categoryName;payee;comment;outcomeAccountName;outcome;outcomeCurrency;incomeAccountName;income;incomeCurrency;createdDate;changedDate\n" +
	`2024-01-01;Переводы;"Ганна Є.";на продукты;Карта;1000;UAH;Долги;0;UAH;2024-01-01 10:00:00;` + "\n" +
	`2024-01-10;Переводы;"Ганна Є.";возврат;Долги;0;UAH;Карта;400;UAH;2024-01-10 10:00:00;` + "\n"

func newTransactionHandler() (*TransactionHandler, *services.TransactionService) {
	service := services.NewTransactionService(storage.NewMemoryStore(), config.LoadTrackerConfig())
	return NewTransactionHandler(service), service
}

func seed(t *testing.T, service *services.TransactionService) {
	t.Helper()
	_, err := service.Import(context.Background(), strings.NewReader(csvUpload))
	assert.NoError(t, err)
}

func TestTransactionHandler_ImportCSV(t *testing.T) {
	t.Run("accepts a raw CSV body", func(t *testing.T) {
		handler, _ := newTransactionHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", strings.NewReader(csvUpload))
		req.Header.Set("Content-Type", "text/csv")
		rec := httptest.NewRecorder()

		handler.ImportCSV(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success bool                  `json:"success"`
			Result  services.ImportResult `json:"result"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, 2, body.Result.Parsed)
		assert.Equal(t, 2, body.Result.Added)
		assert.NotEmpty(t, body.Result.ImportID)
	})

	t.Run("accepts a multipart file upload", func(t *testing.T) {
		handler, _ := newTransactionHandler()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "export.csv")
		assert.NoError(t, err)
		_, err = part.Write([]byte(csvUpload))
		assert.NoError(t, err)
		assert.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		handler.ImportCSV(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects multipart upload without a file field", func(t *testing.T) {
		handler, _ := newTransactionHandler()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		assert.NoError(t, mw.WriteField("other", "value"))
		assert.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		handler.ImportCSV(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("replayed upload reports zero added", func(t *testing.T) {
		handler, service := newTransactionHandler()
		seed(t, service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", strings.NewReader(csvUpload))
		rec := httptest.NewRecorder()

		handler.ImportCSV(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Result services.ImportResult `json:"result"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Result.Parsed)
		assert.Equal(t, 0, body.Result.Added)
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	handler, service := newTransactionHandler()
	seed(t, service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()

	handler.ListTransactions(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var txs []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
	assert.Len(t, txs, 2)
}

func TestTransactionHandler_ViewTransactions(t *testing.T) {
	handler, service := newTransactionHandler()
	seed(t, service)

	t.Run("serves a filtered page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/view?filter=given&sort=asc", nil)
		rec := httptest.NewRecorder()

		handler.ViewTransactions(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var page pipeline.ViewPage
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 1, page.TotalItems)
	})

	t.Run("rejects an unknown filter value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/view?filter=bogus", nil)
		rec := httptest.NewRecorder()

		handler.ViewTransactions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp services.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Validation failed", resp.Error)
		assert.Contains(t, resp.Details, "Filter")
	})

	t.Run("rejects a non-numeric page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/view?page=two", nil)
		rec := httptest.NewRecorder()

		handler.ViewTransactions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a negative page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/view?page=-1", nil)
		rec := httptest.NewRecorder()

		handler.ViewTransactions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTransactionHandler_ExportTransactions(t *testing.T) {
	handler, service := newTransactionHandler()
	seed(t, service)

	t.Run("csv format streams an attachment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export?format=csv", nil)
		rec := httptest.NewRecorder()

		handler.ExportTransactions(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "debt-transactions.csv")
		assert.Contains(t, rec.Body.String(), "GIVEN")
	})

	t.Run("json is the default format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export", nil)
		rec := httptest.NewRecorder()

		handler.ExportTransactions(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export?format=xml", nil)
		rec := httptest.NewRecorder()

		handler.ExportTransactions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
