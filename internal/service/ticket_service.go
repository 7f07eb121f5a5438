package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/prop-hammer/internal/logger"
	"github.com/yourusername/prop-hammer/internal/metrics"
	"github.com/yourusername/prop-hammer/internal/models"
	"github.com/yourusername/prop-hammer/internal/repository"
)

// StageLegRequest carries everything needed to stage an opportunity onto
// the session ticket.
type StageLegRequest struct {
	PlayerName   string          `json:"player_name" validate:"required"`
	StatLabel    string          `json:"stat_label" validate:"required"`
	Line         float64         `json:"line"`
	AmericanOdds int             `json:"american_odds"`
	Verdict      models.Verdict  `json:"verdict"`
	Stake        decimal.Decimal `json:"stake"`
}

// TicketService manages the session ticket: an append-only list of staged
// legs, entirely separate from the engine. The engine never sees tickets.
type TicketService struct {
	repo  repository.TicketRepository
	audit *logger.AuditLogger
}

// NewTicketService creates a new ticket service
func NewTicketService(repo repository.TicketRepository, audit *logger.AuditLogger) *TicketService {
	return &TicketService{repo: repo, audit: audit}
}

// Stage appends a leg to the ticket
func (s *TicketService) Stage(ctx context.Context, req StageLegRequest) (*models.TicketLeg, error) {
	if req.PlayerName == "" || req.StatLabel == "" {
		return nil, fmt.Errorf("player name and stat label are required")
	}
	if req.Stake.IsNegative() {
		return nil, fmt.Errorf("stake cannot be negative")
	}

	verdict := req.Verdict
	if verdict == "" {
		verdict = models.VerdictPass
	}

	leg := &models.TicketLeg{
		ID:           uuid.New(),
		PlayerName:   req.PlayerName,
		StatLabel:    req.StatLabel,
		Line:         req.Line,
		AmericanOdds: req.AmericanOdds,
		Verdict:      verdict,
		Stake:        req.Stake,
		Status:       models.TicketLegStatusStaged,
		StagedAt:     time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, leg); err != nil {
		return nil, fmt.Errorf("failed to stage leg: %w", err)
	}

	legs, err := s.repo.List(ctx)
	if err == nil {
		metrics.RecordTicketLegStaged(len(legs))
	}

	s.audit.LogLegStaged(leg.ID.String(), leg.PlayerName, leg.StatLabel,
		leg.Line, leg.AmericanOdds, leg.Stake.String(), leg.StagedAt)

	return leg, nil
}

// Ticket returns the current ticket with its parlay price
func (s *TicketService) Ticket(ctx context.Context) (*models.Ticket, error) {
	legs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket legs: %w", err)
	}

	return &models.Ticket{
		Legs:       legs,
		ParlayOdds: models.ComputeParlayOdds(legs),
	}, nil
}

// Clear discards all staged legs and returns how many were removed
func (s *TicketService) Clear(ctx context.Context) (int, error) {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear ticket: %w", err)
	}

	metrics.StagedTicketLegs.Set(0)
	s.audit.LogTicketCleared(n)
	return n, nil
}
