package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketLegStatus represents the lifecycle state of a staged leg
type TicketLegStatus string

const (
	TicketLegStatusStaged TicketLegStatus = "staged"
	TicketLegStatusPlaced TicketLegStatus = "placed"
)

// TicketLeg represents a single opportunity staged onto the session ticket.
// The ticket is an append-only list owned by the caller, not by the engine.
type TicketLeg struct {
	ID           uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	PlayerName   string          `db:"player_name" json:"player_name" validate:"required"`
	StatLabel    string          `db:"stat_label" json:"stat_label" validate:"required"`
	Line         float64         `db:"line" json:"line"`
	AmericanOdds int             `db:"american_odds" json:"american_odds"`
	Verdict      Verdict         `db:"verdict" json:"verdict"`
	Stake        decimal.Decimal `db:"stake" json:"stake"`
	Status       TicketLegStatus `db:"status" json:"status" validate:"required"`
	StagedAt     time.Time       `db:"staged_at" json:"staged_at" validate:"required"`
}

// DecimalOdds returns the leg's price in decimal-odds form
func (l TicketLeg) DecimalOdds() decimal.Decimal {
	odds := decimal.NewFromInt(int64(l.AmericanOdds))
	hundred := decimal.NewFromInt(100)
	one := decimal.NewFromInt(1)
	if l.AmericanOdds == 0 {
		return one
	}
	if l.AmericanOdds > 0 {
		return odds.Div(hundred).Add(one)
	}
	return hundred.Div(odds.Abs()).Add(one)
}

// Ticket represents the legs staged during a session plus the combined
// parlay price across them.
type Ticket struct {
	Legs       []TicketLeg     `json:"legs"`
	ParlayOdds decimal.Decimal `json:"parlay_odds"`
}

// ComputeParlayOdds returns the product of the legs' decimal odds. An empty
// ticket prices at 1 (no payout multiplier).
func ComputeParlayOdds(legs []TicketLeg) decimal.Decimal {
	parlay := decimal.NewFromInt(1)
	for _, leg := range legs {
		parlay = parlay.Mul(leg.DecimalOdds())
	}
	return parlay
}
