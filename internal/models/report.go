package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals are the headline figures of the dashboard.
type Totals struct {
	TotalGiven    decimal.Decimal `json:"totalGiven"`
	TotalReturned decimal.Decimal `json:"totalReturned"`
	CurrentDebt   decimal.Decimal `json:"currentDebt"`
	GivenCount    int             `json:"givenCount"`
	ReturnedCount int             `json:"returnedCount"`
	// ReturnRate is totalReturned/totalGiven*100 rounded to one decimal,
	// 0 when nothing has been given yet.
	ReturnRate decimal.Decimal `json:"returnRate"`
}

// MonthlyBucket aggregates one calendar month of activity, keyed YYYY-MM
// of the recorded timestamp.
type MonthlyBucket struct {
	Month          string          `json:"month"`
	Given          decimal.Decimal `json:"given"`
	Returned       decimal.Decimal `json:"returned"`
	GivenCount     int             `json:"givenCount"`
	ReturnedCount  int             `json:"returnedCount"`
	Net            decimal.Decimal `json:"net"`
	EndOfMonthDebt decimal.Decimal `json:"endOfMonthDebt"`
}

// DebtTrend compares the two most recent monthly nets.
type DebtTrend string

const (
	TrendGrowing    DebtTrend = "growing"
	TrendDecreasing DebtTrend = "decreasing"
	TrendStable     DebtTrend = "stable"
)

// ForecastPoint is one projected point on the dashed forecast line.
type ForecastPoint struct {
	Date time.Time       `json:"date"`
	Debt decimal.Decimal `json:"debt"`
}

// ChartPoint is one observed point on the running-debt line.
type ChartPoint struct {
	Date time.Time       `json:"date"`
	Debt decimal.Decimal `json:"debt"`
}

// CategoryBucket groups loan-given amounts by keyword-matched category.
type CategoryBucket struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// WeekdayBucket groups loan-given amounts by day of week (0 = Sunday).
type WeekdayBucket struct {
	Day    int             `json:"day"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// SizeTier labels a loan-size bucket.
type SizeTier string

const (
	SizeSmall  SizeTier = "small"
	SizeMedium SizeTier = "medium"
	SizeLarge  SizeTier = "large"
)

// SizeBucket groups loan-given amounts by size tier.
type SizeBucket struct {
	Size   SizeTier        `json:"size"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// EfficiencyTier rates return discipline from the return ratio.
type EfficiencyTier string

const (
	EfficiencyHigh   EfficiencyTier = "high"
	EfficiencyMedium EfficiencyTier = "medium"
	EfficiencyLow    EfficiencyTier = "low"
)

// Report is the full analytics payload rebuilt on every refresh.
type Report struct {
	Totals     Totals           `json:"totals"`
	Monthly    []MonthlyBucket  `json:"monthly"`
	Trend      DebtTrend        `json:"trend"`
	Forecast   []ForecastPoint  `json:"forecast"`
	Chart      []ChartPoint     `json:"chart"`
	Categories []CategoryBucket `json:"categories"`
	Weekdays   []WeekdayBucket  `json:"weekdays"`
	Sizes      []SizeBucket     `json:"sizes"`
	Efficiency EfficiencyTier   `json:"efficiency"`
	// PaymentsLeft is ceil(currentDebt / average monthly return); nil until
	// the first return exists.
	PaymentsLeft *int      `json:"paymentsLeft"`
	Stale        bool      `json:"stale"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// AdviceCard is one recommendation shown on the dashboard.
type AdviceCard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}
