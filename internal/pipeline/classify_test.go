package pipeline

import (
	"testing"
	"time"

	"github.com/debtwatch/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const marker = "Долги"

func given(amount int64, recordedAt time.Time) models.Transaction {
	return models.Transaction{
		OccurredOn:    recordedAt,
		DebitAccount:  "Карта",
		DebitAmount:   decimal.NewFromInt(amount),
		CreditAccount: "Долги: Ганна",
		CreditAmount:  decimal.Zero,
		RecordedAt:    recordedAt,
	}
}

func returned(amount int64, recordedAt time.Time) models.Transaction {
	return models.Transaction{
		OccurredOn:    recordedAt,
		DebitAccount:  "Долги: Ганна",
		DebitAmount:   decimal.Zero,
		CreditAccount: "Карта",
		CreditAmount:  decimal.NewFromInt(amount),
		RecordedAt:    recordedAt,
	}
}

func at(day int) time.Time {
	return time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	t.Run("credit side debt-labeled with positive debit is a loan given", func(t *testing.T) {
		tx := given(500, at(1))
		out := Classify([]models.Transaction{tx}, marker)

		assert.Len(t, out, 1)
		assert.Equal(t, models.LoanGiven, out[0].Kind)
		assert.True(t, decimal.NewFromInt(500).Equal(out[0].Amount))
		assert.True(t, decimal.NewFromInt(500).Equal(out[0].RunningDebt))
	})

	t.Run("debit side debt-labeled with positive credit is a loan returned", func(t *testing.T) {
		out := Classify([]models.Transaction{given(1000, at(1)), returned(400, at(2))}, marker)

		assert.Len(t, out, 2)
		assert.Equal(t, models.LoanReturned, out[1].Kind)
		assert.True(t, decimal.NewFromInt(400).Equal(out[1].Amount))
		assert.True(t, decimal.NewFromInt(600).Equal(out[1].RunningDebt))
	})

	t.Run("zero-amount rows are excluded", func(t *testing.T) {
		tx := models.Transaction{
			DebitAccount:  "Карта",
			DebitAmount:   decimal.Zero,
			CreditAccount: "Долги: Ганна",
			CreditAmount:  decimal.Zero,
			RecordedAt:    at(1),
		}
		out := Classify([]models.Transaction{tx}, marker)
		assert.Empty(t, out)
	})

	t.Run("rows without a debt-labeled account are excluded", func(t *testing.T) {
		tx := models.Transaction{
			DebitAccount:  "Карта",
			DebitAmount:   decimal.NewFromInt(100),
			CreditAccount: "Наличные",
			CreditAmount:  decimal.Zero,
			RecordedAt:    at(1),
		}
		out := Classify([]models.Transaction{tx}, marker)
		assert.Empty(t, out)
	})

	t.Run("credit-side rule wins when both accounts are debt-labeled", func(t *testing.T) {
		tx := models.Transaction{
			DebitAccount:  "Долги: старый",
			DebitAmount:   decimal.NewFromInt(300),
			CreditAccount: "Долги: Ганна",
			CreditAmount:  decimal.NewFromInt(300),
			RecordedAt:    at(1),
		}
		out := Classify([]models.Transaction{tx}, marker)

		assert.Len(t, out, 1)
		assert.Equal(t, models.LoanGiven, out[0].Kind)
	})

	t.Run("folds in chronological order regardless of input order", func(t *testing.T) {
		out := Classify([]models.Transaction{
			returned(400, at(10)),
			given(200, at(20)),
			given(1000, at(1)),
		}, marker)

		assert.Len(t, out, 3)
		assert.True(t, decimal.NewFromInt(1000).Equal(out[0].RunningDebt))
		assert.True(t, decimal.NewFromInt(600).Equal(out[1].RunningDebt))
		assert.True(t, decimal.NewFromInt(800).Equal(out[2].RunningDebt))
	})

	t.Run("equal timestamps keep original relative order", func(t *testing.T) {
		ts := at(5)
		a := given(100, ts)
		a.Note = "first"
		b := given(200, ts)
		b.Note = "second"

		out := Classify([]models.Transaction{a, b}, marker)
		assert.Len(t, out, 2)
		assert.Equal(t, "first", out[0].Note)
		assert.Equal(t, "second", out[1].Note)
		assert.True(t, decimal.NewFromInt(300).Equal(out[1].RunningDebt))
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		input := []models.Transaction{given(200, at(20)), given(1000, at(1))}
		Classify(input, marker)
		assert.Equal(t, at(20), input[0].RecordedAt)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, Classify(nil, marker))
	})

	t.Run("marker match is case-insensitive", func(t *testing.T) {
		tx := given(100, at(1))
		tx.CreditAccount = "долги: Ганна"
		out := Classify([]models.Transaction{tx}, marker)
		assert.Len(t, out, 1)
	})
}
