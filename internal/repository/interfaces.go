// Package repository provides data access for the ticket store.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/prop-hammer/internal/models"
)

// TicketRepository defines persistence for staged ticket legs. The ticket
// is append-only during a session; legs are added, listed, and eventually
// cleared as a batch, never edited in place.
type TicketRepository interface {
	Append(ctx context.Context, leg *models.TicketLeg) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TicketLeg, error)
	List(ctx context.Context) ([]models.TicketLeg, error)
	Clear(ctx context.Context) (int, error)
}
