package pipeline

import (
	"sort"
	"strings"

	"github.com/debtwatch/backend/internal/models"
)

// Classify decides for each transaction whether it is a loan given or a loan
// returned, drops ambiguous rows, and folds the running debt balance in
// chronological order of RecordedAt.
//
// The credit-side rule is checked first: when both accounts carry the debt
// marker the row counts as a loan given. Rows where neither side is
// debt-labeled, or where the relevant amount is not positive, are excluded.
func Classify(txs []models.Transaction, debtMarker string) []models.Classified {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	// Stable: rows sharing a RecordedAt keep their original relative order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	out := make([]models.Classified, 0, len(sorted))
	running := zero()
	for _, tx := range sorted {
		switch {
		case isDebtLabeled(tx.CreditAccount, debtMarker) && tx.DebitAmount.IsPositive():
			running = running.Add(tx.DebitAmount)
			out = append(out, models.Classified{
				Transaction: tx,
				Kind:        models.LoanGiven,
				Amount:      tx.DebitAmount,
				RunningDebt: running,
			})
		case isDebtLabeled(tx.DebitAccount, debtMarker) && tx.CreditAmount.IsPositive():
			running = running.Sub(tx.CreditAmount)
			out = append(out, models.Classified{
				Transaction: tx,
				Kind:        models.LoanReturned,
				Amount:      tx.CreditAmount,
				RunningDebt: running,
			})
		}
	}
	return out
}

func isDebtLabeled(account, marker string) bool {
	return strings.Contains(strings.ToLower(account), strings.ToLower(marker))
}
