package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/debtwatch/backend/internal/models"
	"github.com/go-redis/redis/v8"
)

const transactionsKey = "debtwatch:transactions"

// RedisStore keeps the transaction set in one hash, fielded by the recorded
// timestamp. It backs up the primary store when Postgres is unreachable.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	fields, err := s.client.HGetAll(ctx, transactionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions from redis: %w", err)
	}

	txs := make([]models.Transaction, 0, len(fields))
	for _, raw := range fields {
		var t models.Transaction
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			// A corrupt field is dropped, not fatal.
			continue
		}
		txs = append(txs, t)
	}
	return txs, nil
}

// AddTransactions stores each row under its recorded timestamp with HSetNX,
// so replays of the same upload add nothing.
func (s *RedisStore) AddTransactions(ctx context.Context, txs []models.Transaction) (int, error) {
	added := 0
	for _, t := range txs {
		raw, err := json.Marshal(t)
		if err != nil {
			return added, fmt.Errorf("failed to marshal transaction: %w", err)
		}
		ok, err := s.client.HSetNX(ctx, transactionsKey, recordedAtField(t.RecordedAt), raw).Result()
		if err != nil {
			return added, fmt.Errorf("failed to store transaction in redis: %w", err)
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func recordedAtField(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
