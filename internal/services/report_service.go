package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/models"
	"github.com/debtwatch/backend/internal/pipeline"
)

// ReportService rebuilds the analytics report on every refresh. When the
// storage layer fails it keeps serving the last successfully built report,
// flagged stale, instead of wiping displayed state.
type ReportService struct {
	transactions *TransactionService
	cfg          *config.TrackerConfig
	now          func() time.Time

	mu   sync.RWMutex
	last *models.Report
}

func NewReportService(transactions *TransactionService, cfg *config.TrackerConfig) *ReportService {
	return &ReportService{
		transactions: transactions,
		cfg:          cfg,
		now:          time.Now,
	}
}

// BuildReport recomputes every aggregate from the current snapshot.
func (rs *ReportService) BuildReport(ctx context.Context) (models.Report, error) {
	classified, err := rs.transactions.Classified(ctx)
	if err != nil {
		rs.mu.RLock()
		last := rs.last
		rs.mu.RUnlock()
		if last == nil {
			return models.Report{}, err
		}
		log.Printf("[REPORT] Refresh failed, serving last good report: %v", err)
		stale := *last
		stale.Stale = true
		return stale, nil
	}

	report := pipeline.BuildReport(classified, rs.cfg, rs.now())

	rs.mu.Lock()
	rs.last = &report
	rs.mu.Unlock()
	return report, nil
}
