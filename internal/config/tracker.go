package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// TrackerConfig holds the domain knobs of the debt tracker: which party and
// which ledger marker identify relevant rows, and the fixed thresholds the
// analytics use.
type TrackerConfig struct {
	TargetName      string
	DebtMarker      string
	DefaultCurrency string
	MinColumns      int
	PageSize        int
	TrendThreshold  decimal.Decimal
	SafetyLimit     decimal.Decimal
	ForecastWindow  int // trailing window, days
	ForecastStep    int // projection step, days
	ForecastSteps   int
	SmallLoanMax    decimal.Decimal
	MediumLoanMax   decimal.Decimal
}

func LoadTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		TargetName:      getEnv("TRACKER_TARGET_NAME", "Ганна Є."),
		DebtMarker:      getEnv("TRACKER_DEBT_MARKER", "Долги"),
		DefaultCurrency: getEnv("TRACKER_CURRENCY", "UAH"),
		MinColumns:      getEnvAsInt("TRACKER_MIN_COLUMNS", 12),
		PageSize:        getEnvAsInt("TRACKER_PAGE_SIZE", 10),
		TrendThreshold:  getEnvAsDecimal("TRACKER_TREND_THRESHOLD", "100"),
		SafetyLimit:     getEnvAsDecimal("TRACKER_SAFETY_LIMIT", "5000"),
		ForecastWindow:  getEnvAsInt("TRACKER_FORECAST_WINDOW_DAYS", 60),
		ForecastStep:    getEnvAsInt("TRACKER_FORECAST_STEP_DAYS", 30),
		ForecastSteps:   getEnvAsInt("TRACKER_FORECAST_STEPS", 3),
		SmallLoanMax:    getEnvAsDecimal("TRACKER_SMALL_LOAN_MAX", "500"),
		MediumLoanMax:   getEnvAsDecimal("TRACKER_MEDIUM_LOAN_MAX", "2000"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDecimal(key, defaultVal string) decimal.Decimal {
	if val := os.Getenv(key); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
	}
	d, _ := decimal.NewFromString(defaultVal)
	return d
}
