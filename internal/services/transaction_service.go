package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/ingest"
	"github.com/debtwatch/backend/internal/models"
	"github.com/debtwatch/backend/internal/pipeline"
	"github.com/debtwatch/backend/internal/storage"
	"github.com/google/uuid"
)

// ImportResult summarizes one CSV upload.
type ImportResult struct {
	ImportID string `json:"importId"`
	Parsed   int    `json:"parsed"`
	Added    int    `json:"added"`
}

// TransactionService owns ingestion, listing and export of the tracked
// transaction set.
type TransactionService struct {
	store  storage.Store
	parser *ingest.Parser
	cfg    *config.TrackerConfig
}

func NewTransactionService(store storage.Store, cfg *config.TrackerConfig) *TransactionService {
	return &TransactionService{
		store:  store,
		parser: ingest.NewParser(cfg),
		cfg:    cfg,
	}
}

// Import parses a raw CSV export, keeps the debt-relevant rows and persists
// them. Re-importing the same file adds nothing; the result reports how many
// rows were genuinely new.
func (ts *TransactionService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	importID := uuid.NewString()

	txs, err := ts.parser.Parse(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read upload: %w", err)
	}

	result := ImportResult{ImportID: importID, Parsed: len(txs)}
	if len(txs) == 0 {
		log.Printf("[IMPORT] %s: no relevant rows in upload", importID)
		return result, nil
	}

	added, err := ts.store.AddTransactions(ctx, txs)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to persist upload: %w", err)
	}
	result.Added = added

	log.Printf("[IMPORT] %s: parsed %d rows, added %d new", importID, result.Parsed, result.Added)
	return result, nil
}

// List returns every persisted transaction in canonical shape.
func (ts *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	txs, err := ts.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

// Classified loads the persisted set and runs it through the classification
// and balance-folding stages.
func (ts *TransactionService) Classified(ctx context.Context) ([]models.Classified, error) {
	txs, err := ts.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.Classify(txs, ts.cfg.DebtMarker), nil
}

// View renders one page of the transaction table from an explicit view state.
func (ts *TransactionService) View(ctx context.Context, state pipeline.ViewState) (pipeline.ViewPage, error) {
	classified, err := ts.Classified(ctx)
	if err != nil {
		return pipeline.ViewPage{}, err
	}
	if state.PageSize == 0 {
		state.PageSize = ts.cfg.PageSize
	}
	return pipeline.QueryView(classified, state), nil
}

// ExportCSV writes the classified sequence as CSV.
func (ts *TransactionService) ExportCSV(ctx context.Context, w io.Writer) error {
	classified, err := ts.Classified(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "recorded_at", "comment", "kind", "amount", "running_debt", "currency"}); err != nil {
		return err
	}
	for _, c := range classified {
		record := []string{
			c.OccurredOn.Format("2006-01-02"),
			c.RecordedAt.Format("2006-01-02 15:04:05"),
			c.Note,
			string(c.Kind),
			c.Amount.StringFixed(2),
			c.RunningDebt.StringFixed(2),
			c.Currency,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
