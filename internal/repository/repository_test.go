package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-hammer/internal/models"
)

func stagedLeg(player string) *models.TicketLeg {
	return &models.TicketLeg{
		ID:           uuid.New(),
		PlayerName:   player,
		StatLabel:    "Points",
		Line:         27.5,
		AmericanOdds: -110,
		Verdict:      models.VerdictBet,
		Stake:        decimal.NewFromInt(10),
		Status:       models.TicketLegStatusStaged,
		StagedAt:     time.Now(),
	}
}

func TestMemoryTicketRepositoryAppendAndList(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	first := stagedLeg("Donovan Mitchell")
	second := stagedLeg("Darius Garland")
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	legs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, first.ID, legs[0].ID)
	assert.Equal(t, second.ID, legs[1].ID)
}

func TestMemoryTicketRepositoryGetByID(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	leg := stagedLeg("Donovan Mitchell")
	require.NoError(t, repo.Append(ctx, leg))

	got, err := repo.GetByID(ctx, leg.ID)
	require.NoError(t, err)
	assert.Equal(t, leg.PlayerName, got.PlayerName)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryTicketRepositoryClear(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, stagedLeg("A")))
	require.NoError(t, repo.Append(ctx, stagedLeg("B")))

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	legs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, legs)
}
