package ingest

import (
	"bufio"
	"io"
	"log"
	"strings"
	"time"

	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Positional columns of the finance export.
const (
	colOccurredOn = iota
	colCategory
	colCounterparty
	colNote
	colDebitAccount
	colDebitAmount
	colDebitCurrency
	colCreditAccount
	colCreditAmount
	colCreditCurrency
	colRecordedAt
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parser turns raw CSV text into canonical transactions, keeping only rows
// that belong to the tracked party and touch the debt account.
type Parser struct {
	cfg *config.TrackerConfig
}

func NewParser(cfg *config.TrackerConfig) *Parser {
	return &Parser{cfg: cfg}
}

// Parse reads the whole export. The first line is a header and is skipped.
// Malformed rows are dropped, never reported as errors; only a read failure
// of the underlying source surfaces.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		out     []models.Transaction
		lineNo  int
		dropped int
	)
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tx, ok := p.parseLine(line)
		if !ok {
			dropped++
			continue
		}
		out = append(out, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Printf("[INGEST] Dropped %d malformed or irrelevant rows out of %d", dropped, lineNo-1)
	}
	return out, nil
}

// parseLine parses one row. ok is false for rows that are malformed or do
// not belong to the tracked debt relationship.
func (p *Parser) parseLine(line string) (models.Transaction, bool) {
	cols := splitColumns(line)
	if len(cols) < p.cfg.MinColumns {
		return models.Transaction{}, false
	}

	if !containsFold(cols[colCounterparty], p.cfg.TargetName) {
		return models.Transaction{}, false
	}
	if !containsFold(cols[colDebitAccount], p.cfg.DebtMarker) &&
		!containsFold(cols[colCreditAccount], p.cfg.DebtMarker) {
		return models.Transaction{}, false
	}

	occurredOn, ok := parseDate(cols[colOccurredOn])
	if !ok {
		return models.Transaction{}, false
	}
	recordedAt, ok := parseDate(cols[colRecordedAt])
	if !ok {
		return models.Transaction{}, false
	}

	currency := cols[colDebitCurrency]
	if currency == "" {
		currency = cols[colCreditCurrency]
	}
	if currency == "" {
		currency = p.cfg.DefaultCurrency
	}

	return models.Transaction{
		OccurredOn:    occurredOn,
		Category:      cols[colCategory],
		Counterparty:  cols[colCounterparty],
		Note:          cols[colNote],
		DebitAccount:  cols[colDebitAccount],
		DebitAmount:   parseAmount(cols[colDebitAmount]),
		CreditAccount: cols[colCreditAccount],
		CreditAmount:  parseAmount(cols[colCreditAmount]),
		Currency:      currency,
		RecordedAt:    recordedAt,
		SourceLine:    line,
	}, true
}

// splitColumns splits on ';' or ',', whichever the line actually uses, and
// strips quoting. Exports mix both delimiters between versions.
func splitColumns(line string) []string {
	delim := ";"
	if strings.Count(line, ";") < strings.Count(line, ",") {
		delim = ","
	}
	cols := strings.Split(line, delim)
	for i, col := range cols {
		cols[i] = strings.TrimSpace(strings.ReplaceAll(col, `"`, ""))
	}
	return cols
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// parseAmount is lenient: anything unparseable counts as zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
