package memory

import (
	"context"
	"errors"
	"testing"

	"settlement-reconciler/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementRepo_MutateAndList(t *testing.T) {
	repo := NewSettlementRepo()
	ctx := context.Background()

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = repo.Mutate(ctx, func(cur []domain.PendingSettlement) ([]domain.PendingSettlement, error) {
		return append(cur, domain.PendingSettlement{ID: "a"}, domain.PendingSettlement{ID: "b"}), nil
	})
	require.NoError(t, err)

	got, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}

func TestSettlementRepo_ListReturnsCopy(t *testing.T) {
	repo := NewSettlementRepo()
	ctx := context.Background()

	_, err := repo.Mutate(ctx, func(cur []domain.PendingSettlement) ([]domain.PendingSettlement, error) {
		return append(cur, domain.PendingSettlement{ID: "a"}), nil
	})
	require.NoError(t, err)

	got, _ := repo.List(ctx)
	got[0].ID = "mutated"

	again, _ := repo.List(ctx)
	assert.Equal(t, "a", again[0].ID)
}

func TestSettlementRepo_MutateError(t *testing.T) {
	repo := NewSettlementRepo()
	boom := errors.New("boom")

	_, err := repo.Mutate(context.Background(), func([]domain.PendingSettlement) ([]domain.PendingSettlement, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
