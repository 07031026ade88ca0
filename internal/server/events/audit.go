package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// AuditListener writes every event to the log.
type AuditListener struct {
	logger logging.Logger
}

func NewAuditListener(logger logging.Logger) *AuditListener {
	return &AuditListener{logger: logger.With("module", "audit")}
}

func (a *AuditListener) Handle(ctx context.Context, e Event) error {
	a.logger.Info(ctx, "audit",
		"event", string(e.Kind),
		"subject_id", e.SubjectID,
		"user_id", e.UserID,
		"at", e.At.UTC().Format(time.RFC3339),
	)
	return nil
}
