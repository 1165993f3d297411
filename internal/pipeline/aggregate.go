package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func zero() decimal.Decimal { return decimal.Zero }

// CategoryRule maps note keywords onto an ad-hoc category label.
type CategoryRule struct {
	Category string
	Keywords []string
}

// DefaultCategoryRules cover the note vocabulary seen in real exports.
// Anything unmatched lands in the fallback bucket.
var DefaultCategoryRules = []CategoryRule{
	{Category: "groceries", Keywords: []string{"прод", "їжа", "еда", "магазин"}},
	{Category: "transport", Keywords: []string{"такси", "таксі", "проезд", "проїзд"}},
	{Category: "bills", Keywords: []string{"коммун", "комун", "аренда", "оренда"}},
	{Category: "cash", Keywords: []string{"налич", "готівк", "карт"}},
}

const fallbackCategory = "other"

// ComputeTotals sums given and returned amounts. CurrentDebt is their
// difference and always equals the last running-debt snapshot.
func ComputeTotals(classified []models.Classified) models.Totals {
	t := models.Totals{
		TotalGiven:    zero(),
		TotalReturned: zero(),
		CurrentDebt:   zero(),
		ReturnRate:    zero(),
	}
	for _, c := range classified {
		if c.Kind == models.LoanGiven {
			t.TotalGiven = t.TotalGiven.Add(c.Amount)
			t.GivenCount++
		} else {
			t.TotalReturned = t.TotalReturned.Add(c.Amount)
			t.ReturnedCount++
		}
	}
	t.CurrentDebt = t.TotalGiven.Sub(t.TotalReturned)
	if t.TotalGiven.IsPositive() {
		t.ReturnRate = t.TotalReturned.Div(t.TotalGiven).Mul(hundred).Round(1)
	}
	return t
}

// MonthlyBuckets groups activity by calendar month of RecordedAt, ascending.
func MonthlyBuckets(classified []models.Classified) []models.MonthlyBucket {
	byMonth := make(map[string]*models.MonthlyBucket)
	for _, c := range classified {
		key := c.RecordedAt.Format("2006-01")
		b, ok := byMonth[key]
		if !ok {
			b = &models.MonthlyBucket{
				Month:    key,
				Given:    zero(),
				Returned: zero(),
			}
			byMonth[key] = b
		}
		if c.Kind == models.LoanGiven {
			b.Given = b.Given.Add(c.Amount)
			b.GivenCount++
		} else {
			b.Returned = b.Returned.Add(c.Amount)
			b.ReturnedCount++
		}
		// Classified input is chronological, so the last write per month is
		// the end-of-month snapshot.
		b.EndOfMonthDebt = c.RunningDebt
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		b := byMonth[k]
		b.Net = b.Given.Sub(b.Returned)
		out = append(out, *b)
	}
	return out
}

// Trend compares the nets of the two most recent months against a fixed
// threshold. Fewer than two months of history reads as stable.
func Trend(monthly []models.MonthlyBucket, threshold decimal.Decimal) models.DebtTrend {
	if len(monthly) < 2 {
		return models.TrendStable
	}
	delta := monthly[len(monthly)-1].Net.Sub(monthly[len(monthly)-2].Net)
	switch {
	case delta.GreaterThan(threshold):
		return models.TrendGrowing
	case delta.LessThan(threshold.Neg()):
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// ChartPoints projects the folded sequence onto the running-debt line.
func ChartPoints(classified []models.Classified) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(classified))
	for _, c := range classified {
		points = append(points, models.ChartPoint{Date: c.RecordedAt, Debt: c.RunningDebt})
	}
	return points
}

// Forecast extrapolates the running debt linearly from the trailing window:
// average debt change per day between the window's earliest and latest points,
// projected forward in fixed-size steps and clamped at zero.
func Forecast(points []models.ChartPoint, cfg *config.TrackerConfig) []models.ForecastPoint {
	if len(points) < 2 {
		return nil
	}
	last := points[len(points)-1]
	if !last.Debt.IsPositive() {
		return nil
	}

	windowStart := last.Date.AddDate(0, 0, -cfg.ForecastWindow)
	earliest := last
	for _, p := range points {
		if !p.Date.Before(windowStart) {
			earliest = p
			break
		}
	}
	days := last.Date.Sub(earliest.Date).Hours() / 24
	if days <= 0 {
		return nil
	}
	perDay := last.Debt.Sub(earliest.Debt).Div(decimal.NewFromFloat(days))

	out := make([]models.ForecastPoint, 0, cfg.ForecastSteps)
	for i := 1; i <= cfg.ForecastSteps; i++ {
		stepDays := cfg.ForecastStep * i
		projected := last.Debt.Add(perDay.Mul(decimal.NewFromInt(int64(stepDays))))
		if projected.IsNegative() {
			projected = zero()
		}
		out = append(out, models.ForecastPoint{
			Date: last.Date.AddDate(0, 0, stepDays),
			Debt: projected.Round(2),
		})
		if projected.IsZero() {
			break
		}
	}
	return out
}

// CategoryBuckets groups loan-given amounts by keyword match on the note.
func CategoryBuckets(classified []models.Classified, rules []CategoryRule) []models.CategoryBucket {
	byCat := make(map[string]*models.CategoryBucket)
	order := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		byCat[r.Category] = &models.CategoryBucket{Category: r.Category, Amount: zero()}
		order = append(order, r.Category)
	}
	byCat[fallbackCategory] = &models.CategoryBucket{Category: fallbackCategory, Amount: zero()}
	order = append(order, fallbackCategory)

	for _, c := range classified {
		if c.Kind != models.LoanGiven {
			continue
		}
		b := byCat[matchCategory(c.Note, rules)]
		b.Amount = b.Amount.Add(c.Amount)
		b.Count++
	}

	out := make([]models.CategoryBucket, 0, len(order))
	for _, cat := range order {
		if b := byCat[cat]; b.Count > 0 {
			out = append(out, *b)
		}
	}
	return out
}

func matchCategory(note string, rules []CategoryRule) string {
	lower := strings.ToLower(note)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return fallbackCategory
}

// WeekdayBuckets groups loan-given amounts by day of week, Sunday first.
// All seven buckets are always present.
func WeekdayBuckets(classified []models.Classified) []models.WeekdayBucket {
	out := make([]models.WeekdayBucket, 7)
	for i := range out {
		out[i] = models.WeekdayBucket{Day: i, Amount: zero()}
	}
	for _, c := range classified {
		if c.Kind != models.LoanGiven {
			continue
		}
		day := int(c.RecordedAt.Weekday())
		out[day].Amount = out[day].Amount.Add(c.Amount)
		out[day].Count++
	}
	return out
}

// SizeBuckets tiers loan-given amounts into small, medium and large.
func SizeBuckets(classified []models.Classified, cfg *config.TrackerConfig) []models.SizeBucket {
	out := []models.SizeBucket{
		{Size: models.SizeSmall, Amount: zero()},
		{Size: models.SizeMedium, Amount: zero()},
		{Size: models.SizeLarge, Amount: zero()},
	}
	for _, c := range classified {
		if c.Kind != models.LoanGiven {
			continue
		}
		idx := 2
		switch {
		case c.Amount.LessThan(cfg.SmallLoanMax):
			idx = 0
		case c.Amount.LessThanOrEqual(cfg.MediumLoanMax):
			idx = 1
		}
		out[idx].Amount = out[idx].Amount.Add(c.Amount)
		out[idx].Count++
	}
	return out
}

// PayoffProjection estimates how many average-return months remain before the
// debt reaches zero. Nil until the first return exists.
func PayoffProjection(totals models.Totals, monthly []models.MonthlyBucket) *int {
	if totals.ReturnedCount == 0 || !totals.CurrentDebt.IsPositive() {
		return nil
	}
	monthsWithReturns := 0
	for _, m := range monthly {
		if m.ReturnedCount > 0 {
			monthsWithReturns++
		}
	}
	if monthsWithReturns == 0 {
		return nil
	}
	avgMonthly := totals.TotalReturned.Div(decimal.NewFromInt(int64(monthsWithReturns)))
	if !avgMonthly.IsPositive() {
		return nil
	}
	ratio, _ := totals.CurrentDebt.Div(avgMonthly).Float64()
	n := int(math.Ceil(ratio))
	return &n
}

// Efficiency rates return discipline: above 70% is high, above 40% medium.
func Efficiency(totals models.Totals) models.EfficiencyTier {
	if !totals.TotalGiven.IsPositive() {
		return models.EfficiencyLow
	}
	ratio := totals.TotalReturned.Div(totals.TotalGiven)
	switch {
	case ratio.GreaterThan(decimal.NewFromFloat(0.7)):
		return models.EfficiencyHigh
	case ratio.GreaterThan(decimal.NewFromFloat(0.4)):
		return models.EfficiencyMedium
	default:
		return models.EfficiencyLow
	}
}

// BuildReport runs every aggregate over the folded sequence. All reductions
// tolerate empty input and return their zero defaults.
func BuildReport(classified []models.Classified, cfg *config.TrackerConfig, now time.Time) models.Report {
	totals := ComputeTotals(classified)
	monthly := MonthlyBuckets(classified)
	chart := ChartPoints(classified)
	return models.Report{
		Totals:       totals,
		Monthly:      monthly,
		Trend:        Trend(monthly, cfg.TrendThreshold),
		Forecast:     Forecast(chart, cfg),
		Chart:        chart,
		Categories:   CategoryBuckets(classified, DefaultCategoryRules),
		Weekdays:     WeekdayBuckets(classified),
		Sizes:        SizeBuckets(classified, cfg),
		Efficiency:   Efficiency(totals),
		PaymentsLeft: PayoffProjection(totals, monthly),
		GeneratedAt:  now,
	}
}
