package storage

import (
	"context"
	"sync"
	"time"

	"github.com/debtwatch/backend/internal/models"
)

// MemoryStore is the last resort of the fallback chain. Data lives for the
// lifetime of the process only.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[time.Time]models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[time.Time]models.Transaction)}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]models.Transaction, 0, len(s.data))
	for _, t := range s.data {
		txs = append(txs, t)
	}
	return txs, nil
}

func (s *MemoryStore) AddTransactions(ctx context.Context, txs []models.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, t := range txs {
		key := t.RecordedAt.UTC()
		if _, exists := s.data[key]; exists {
			continue
		}
		s.data[key] = t
		added++
	}
	return added, nil
}
