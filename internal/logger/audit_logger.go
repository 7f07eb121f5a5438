// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for ticket activity. Staged
// legs represent money a user intends to risk, so every mutation is logged
// with its full context.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogLegStaged logs a ticket leg being staged.
func (al *AuditLogger) LogLegStaged(legID, playerName, statLabel string, line float64, americanOdds int, stake string, stagedAt time.Time) {
	al.WithFields(logrus.Fields{
		"leg_id":        legID,
		"player_name":   playerName,
		"stat_label":    statLabel,
		"line":          line,
		"american_odds": americanOdds,
		"stake":         stake,
		"timestamp":     stagedAt.Unix(),
	}).Info("Ticket leg staged")
}

// LogTicketCleared logs a ticket being cleared.
func (al *AuditLogger) LogTicketCleared(legCount int) {
	al.WithFields(logrus.Fields{
		"legs_discarded": legCount,
	}).Info("Ticket cleared")
}

// LogSheetRefresh logs a scheduled sheet refresh outcome.
func (al *AuditLogger) LogSheetRefresh(source string, rows int, err error) {
	fields := logrus.Fields{
		"source": source,
		"rows":   rows,
	}
	if err != nil {
		al.WithFields(fields).WithError(err).Warn("Sheet refresh failed")
		return
	}
	al.WithFields(fields).Info("Sheet refreshed")
}
