package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/debtwatch/backend/internal/models"
)

// Store is the persistence contract of the tracker. Load returns every
// persisted transaction in arbitrary order; Add appends only rows whose
// RecordedAt is not already present and reports how many were actually added.
// Add must be safe to call with overlapping input.
type Store interface {
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	AddTransactions(ctx context.Context, txs []models.Transaction) (int, error)
	Name() string
}

// Chain tries an ordered list of backends and settles on the first that
// answers. Typical order: Postgres, Redis cache, in-memory.
type Chain struct {
	backends []Store
}

func NewChain(backends ...Store) *Chain {
	return &Chain{backends: backends}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	var lastErr error
	for _, b := range c.backends {
		txs, err := b.LoadTransactions(ctx)
		if err != nil {
			log.Printf("[STORAGE] Load via %s failed: %v", b.Name(), err)
			lastErr = err
			continue
		}
		return txs, nil
	}
	if lastErr == nil {
		return nil, fmt.Errorf("no storage backends configured")
	}
	return nil, fmt.Errorf("all storage backends failed: %w", lastErr)
}

func (c *Chain) AddTransactions(ctx context.Context, txs []models.Transaction) (int, error) {
	var lastErr error
	for _, b := range c.backends {
		added, err := b.AddTransactions(ctx, txs)
		if err != nil {
			log.Printf("[STORAGE] Add via %s failed: %v", b.Name(), err)
			lastErr = err
			continue
		}
		return added, nil
	}
	if lastErr == nil {
		return 0, fmt.Errorf("no storage backends configured")
	}
	return 0, fmt.Errorf("all storage backends failed: %w", lastErr)
}
