package postgres

import (
	"context"
	"fmt"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const insertEventSQL = `INSERT INTO settlement_events (id, settlement_id, kind, sell_currency, buy_currency, sell_amount, buy_amount, conversion_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// execer is satisfied by both Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type journalRepo struct {
	pool Pool
}

// NewJournalRepository creates a PostgreSQL-backed JournalRepository.
func NewJournalRepository(pool Pool) ports.JournalRepository {
	return &journalRepo{pool: pool}
}

func (r *journalRepo) Create(ctx context.Context, ev *domain.SettlementEvent) error {
	return insertEvent(ctx, r.pool, ev)
}

// CreateBatch writes events atomically: either all of them are journaled or none.
func (r *journalRepo) CreateBatch(ctx context.Context, events []*domain.SettlementEvent) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, ev := range events {
			if err := insertEvent(ctx, tx, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertEvent(ctx context.Context, db execer, ev *domain.SettlementEvent) error {
	var conversionID *string
	if ev.ConversionID != "" {
		conversionID = &ev.ConversionID
	}
	_, err := db.Exec(ctx, insertEventSQL,
		ev.ID, ev.SettlementID, string(ev.Kind), ev.SellCurrency, ev.BuyCurrency,
		ev.SellAmount.String(), ev.BuyAmount.String(), conversionID, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting settlement event: %w", err)
	}
	return nil
}

func (r *journalRepo) ListBySettlement(ctx context.Context, settlementID string) ([]domain.SettlementEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, settlement_id, kind, sell_currency, buy_currency, sell_amount::text, buy_amount::text, conversion_id, created_at
		 FROM settlement_events WHERE settlement_id = $1 ORDER BY created_at`,
		settlementID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying settlement events: %w", err)
	}
	defer rows.Close()

	var events []domain.SettlementEvent
	for rows.Next() {
		var (
			ev                 domain.SettlementEvent
			kind               string
			sellAmount, buyAmt string
			conversionID       *string
		)
		if err := rows.Scan(&ev.ID, &ev.SettlementID, &kind, &ev.SellCurrency, &ev.BuyCurrency,
			&sellAmount, &buyAmt, &conversionID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning settlement event: %w", err)
		}
		ev.Kind = domain.SettlementEventKind(kind)
		if ev.SellAmount, err = decimal.NewFromString(sellAmount); err != nil {
			return nil, fmt.Errorf("parsing sell_amount: %w", err)
		}
		if ev.BuyAmount, err = decimal.NewFromString(buyAmt); err != nil {
			return nil, fmt.Errorf("parsing buy_amount: %w", err)
		}
		if conversionID != nil {
			ev.ConversionID = *conversionID
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
