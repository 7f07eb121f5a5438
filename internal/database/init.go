package database

import (
	"context"
	"fmt"
)

// ticketSchema defines the ticket store. Tickets are the only thing this
// application persists; stat history and opportunities are recomputed from
// the live sheet snapshot on every run.
const ticketSchema = `
CREATE TABLE IF NOT EXISTS ticket_legs (
	id            UUID PRIMARY KEY,
	player_name   TEXT NOT NULL,
	stat_label    TEXT NOT NULL,
	line          DOUBLE PRECISION NOT NULL,
	american_odds INTEGER NOT NULL,
	verdict       TEXT NOT NULL,
	stake         NUMERIC(12, 2) NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'staged',
	staged_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ticket_legs_staged_at ON ticket_legs (staged_at);
`

// InitSchema creates the ticket tables if they do not exist
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, ticketSchema); err != nil {
		return fmt.Errorf("failed to initialize ticket schema: %w", err)
	}
	return nil
}
