package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/prop-hammer/internal/models"
)

// MemoryTicketRepository implements TicketRepository in memory. Used when
// the database is disabled: the ticket then lives only for the session,
// which matches how the spreadsheet tool behaved.
type MemoryTicketRepository struct {
	mu   sync.RWMutex
	legs []models.TicketLeg
}

// NewMemoryTicketRepository creates an in-memory ticket repository
func NewMemoryTicketRepository() TicketRepository {
	return &MemoryTicketRepository{}
}

// Append adds a leg to the in-memory list
func (r *MemoryTicketRepository) Append(ctx context.Context, leg *models.TicketLeg) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.legs = append(r.legs, *leg)
	return nil
}

// GetByID retrieves a leg by ID
func (r *MemoryTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TicketLeg, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.legs {
		if r.legs[i].ID == id {
			leg := r.legs[i]
			return &leg, nil
		}
	}
	return nil, models.ErrNotFound
}

// List returns all legs in staging order
func (r *MemoryTicketRepository) List(ctx context.Context) ([]models.TicketLeg, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	legs := make([]models.TicketLeg, len(r.legs))
	copy(legs, r.legs)
	return legs, nil
}

// Clear removes all legs and returns how many were removed
func (r *MemoryTicketRepository) Clear(ctx context.Context) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.legs)
	r.legs = nil
	return n, nil
}
