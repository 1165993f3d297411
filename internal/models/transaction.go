package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanKind classifies a debt-relevant transaction.
type LoanKind string

const (
	LoanGiven    LoanKind = "GIVEN"
	LoanReturned LoanKind = "RETURNED"
)

// Transaction is the canonical persisted shape of one ledger row. Storage
// backends normalize into this struct on load; the pipeline never sees
// backend-specific field naming.
type Transaction struct {
	ID            int             `json:"id,omitempty" db:"id"`
	OccurredOn    time.Time       `json:"date" db:"date"`
	Category      string          `json:"category_name" db:"category_name"`
	Counterparty  string          `json:"payee" db:"payee"`
	Note          string          `json:"comment" db:"comment"`
	DebitAccount  string          `json:"debit_account_name" db:"debit_account_name"`
	DebitAmount   decimal.Decimal `json:"debit_amount" db:"debit_amount"`
	CreditAccount string          `json:"credit_account_name" db:"credit_account_name"`
	CreditAmount  decimal.Decimal `json:"credit_amount" db:"credit_amount"`
	Currency      string          `json:"currency" db:"currency"`
	// RecordedAt is the export's creation timestamp. It is the natural key:
	// the persisted set never holds two rows with the same RecordedAt.
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
	SourceLine string    `json:"raw_line,omitempty" db:"raw_line"`
}

// Classified is a Transaction plus the classification output and the running
// balance after folding it in. Computed per load, never persisted.
type Classified struct {
	Transaction
	Kind        LoanKind        `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	RunningDebt decimal.Decimal `json:"running_debt"`
}
