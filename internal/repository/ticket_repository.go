package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/prop-hammer/internal/database"
	"github.com/yourusername/prop-hammer/internal/models"
)

// PostgresTicketRepository implements TicketRepository for PostgreSQL
type PostgresTicketRepository struct {
	db *database.DB
}

// NewPostgresTicketRepository creates a new ticket repository
func NewPostgresTicketRepository(db *database.DB) TicketRepository {
	return &PostgresTicketRepository{db: db}
}

// Append inserts a new staged leg
func (r *PostgresTicketRepository) Append(ctx context.Context, leg *models.TicketLeg) error {
	query := `
		INSERT INTO ticket_legs (id, player_name, stat_label, line, american_odds, verdict, stake, status, staged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		leg.ID, leg.PlayerName, leg.StatLabel, leg.Line, leg.AmericanOdds,
		leg.Verdict, leg.Stake, leg.Status, leg.StagedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append ticket leg: %w", err)
	}

	return nil
}

// GetByID retrieves a staged leg by ID
func (r *PostgresTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TicketLeg, error) {
	query := `
		SELECT id, player_name, stat_label, line, american_odds, verdict, stake, status, staged_at
		FROM ticket_legs WHERE id = $1
	`

	leg := &models.TicketLeg{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&leg.ID, &leg.PlayerName, &leg.StatLabel, &leg.Line, &leg.AmericanOdds,
		&leg.Verdict, &leg.Stake, &leg.Status, &leg.StagedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket leg: %w", err)
	}

	return leg, nil
}

// List returns all staged legs in staging order
func (r *PostgresTicketRepository) List(ctx context.Context) ([]models.TicketLeg, error) {
	query := `
		SELECT id, player_name, stat_label, line, american_odds, verdict, stake, status, staged_at
		FROM ticket_legs ORDER BY staged_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket legs: %w", err)
	}
	defer rows.Close()

	var legs []models.TicketLeg
	for rows.Next() {
		var leg models.TicketLeg
		if err := rows.Scan(
			&leg.ID, &leg.PlayerName, &leg.StatLabel, &leg.Line, &leg.AmericanOdds,
			&leg.Verdict, &leg.Stake, &leg.Status, &leg.StagedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ticket leg: %w", err)
		}
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ticket legs: %w", err)
	}

	return legs, nil
}

// Clear deletes all staged legs and returns how many were removed
func (r *PostgresTicketRepository) Clear(ctx context.Context) (int, error) {
	tag, err := r.db.GetPool().Exec(ctx, `DELETE FROM ticket_legs`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear ticket legs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
