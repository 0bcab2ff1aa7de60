package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// withTx runs fn inside one transaction on pool. The transaction is rolled
// back when fn fails and committed otherwise.
func withTx(ctx context.Context, pool Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
