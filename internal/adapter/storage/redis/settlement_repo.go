package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// maxMutateAttempts bounds WATCH retries when other writers keep winning.
const maxMutateAttempts = 50

// ErrMutateConflict is returned when the list kept changing under WATCH.
var ErrMutateConflict = errors.New("settlement list changed concurrently")

// SettlementRepo implements ports.SettlementRepository as one JSON array
// stored under a single key.
type SettlementRepo struct {
	client goredis.UniversalClient
	key    string
}

// NewSettlementRepo creates a Redis-backed settlement repository.
func NewSettlementRepo(client goredis.UniversalClient, key string) *SettlementRepo {
	return &SettlementRepo{client: client, key: key}
}

// List returns the persisted list, or an empty list when the key is absent.
func (r *SettlementRepo) List(ctx context.Context) ([]domain.PendingSettlement, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return []domain.PendingSettlement{}, nil
		}
		return nil, fmt.Errorf("redis settlements get: %w", err)
	}
	return decodeSettlements(raw)
}

// Mutate replaces the list with fn(current) inside a WATCH/MULTI transaction,
// retrying when another writer modified the key in between.
func (r *SettlementRepo) Mutate(ctx context.Context, fn ports.MutateFunc) ([]domain.PendingSettlement, error) {
	var written []domain.PendingSettlement

	txf := func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, r.key).Bytes()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return fmt.Errorf("redis settlements get: %w", err)
		}
		current := []domain.PendingSettlement{}
		if err == nil {
			if current, err = decodeSettlements(raw); err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			next = []domain.PendingSettlement{}
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encoding settlements: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, r.key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}
		written = next
		return nil
	}

	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, r.key)
		if err == nil {
			return written, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("redis settlements mutate: %w", ErrMutateConflict)
}

func decodeSettlements(raw []byte) ([]domain.PendingSettlement, error) {
	var out []domain.PendingSettlement
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding settlements: %w", err)
	}
	if out == nil {
		out = []domain.PendingSettlement{}
	}
	return out, nil
}
