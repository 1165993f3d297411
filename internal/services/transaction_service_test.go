package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/models"
	"github.com/debtwatch/backend/internal/pipeline"
	"github.com/debtwatch/backend/internal/storage"
	"github.com/stretchr/testify/assert"
)

const csvHeader = "date;categoryName;payee;comment;outcomeAccountName;outcome;outcomeCurrency;incomeAccountName;income;incomeCurrency;createdDate;changedDate\n"

const csvUpload = csvHeader +
	`2024-01-01;Переводы;"Ганна Є.";на продукты;Карта;1000;UAH;Долги;0;UAH;2024-01-01 10:00:00;` + "\n" +
	`2024-01-10;Переводы;"Ганна Є.";возврат;Долги;0;UAH;Карта;400;UAH;2024-01-10 10:00:00;` + "\n" +
	`2024-01-12;Еда;Кто-то другой;обед;Карта;200;UAH;Карта;0;UAH;2024-01-12 10:00:00;` + "\n"

func testTransactionService() *TransactionService {
	return NewTransactionService(storage.NewMemoryStore(), config.LoadTrackerConfig())
}

func TestTransactionService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("persists only relevant rows", func(t *testing.T) {
		ts := testTransactionService()

		result, err := ts.Import(ctx, strings.NewReader(csvUpload))
		assert.NoError(t, err)
		assert.NotEmpty(t, result.ImportID)
		assert.Equal(t, 2, result.Parsed)
		assert.Equal(t, 2, result.Added)

		txs, err := ts.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("re-importing the same file adds nothing", func(t *testing.T) {
		ts := testTransactionService()

		_, err := ts.Import(ctx, strings.NewReader(csvUpload))
		assert.NoError(t, err)

		result, err := ts.Import(ctx, strings.NewReader(csvUpload))
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Parsed)
		assert.Equal(t, 0, result.Added)

		txs, err := ts.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("upload without relevant rows is a clean no-op", func(t *testing.T) {
		ts := testTransactionService()

		result, err := ts.Import(ctx, strings.NewReader(csvHeader))
		assert.NoError(t, err)
		assert.Equal(t, 0, result.Parsed)
		assert.Equal(t, 0, result.Added)
	})
}

func TestTransactionService_List(t *testing.T) {
	t.Run("empty store yields an empty slice, not nil", func(t *testing.T) {
		ts := testTransactionService()

		txs, err := ts.List(context.Background())
		assert.NoError(t, err)
		assert.NotNil(t, txs)
		assert.Empty(t, txs)
	})
}

func TestTransactionService_View(t *testing.T) {
	ctx := context.Background()
	ts := testTransactionService()

	_, err := ts.Import(ctx, strings.NewReader(csvUpload))
	assert.NoError(t, err)

	t.Run("serves a page with classification applied", func(t *testing.T) {
		page, err := ts.View(ctx, pipeline.ViewState{})
		assert.NoError(t, err)
		assert.Equal(t, 2, page.TotalItems)
		assert.Equal(t, models.LoanReturned, page.Items[0].Kind)
		assert.Equal(t, models.LoanGiven, page.Items[1].Kind)
	})

	t.Run("page size defaults from configuration", func(t *testing.T) {
		page, err := ts.View(ctx, pipeline.ViewState{Filter: "given"})
		assert.NoError(t, err)
		assert.Equal(t, 1, page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestTransactionService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	ts := testTransactionService()

	_, err := ts.Import(ctx, strings.NewReader(csvUpload))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, ts.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "date,recorded_at,comment,kind,amount,running_debt,currency", lines[0])
	assert.Contains(t, lines[1], "GIVEN")
	assert.Contains(t, lines[1], "1000.00")
	assert.Contains(t, lines[2], "RETURNED")
	assert.Contains(t, lines[2], "600.00")
}
