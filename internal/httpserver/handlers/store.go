package handlers

import (
	"context"

	"aesgcm/internal/models"
)

// Store is the persistence the handlers need. *store.Store satisfies it.
type Store interface {
	SaveVectors(ctx context.Context, rows []models.Vector) error
	SaveValidation(ctx context.Context, run *models.ValidationRun) error
	RecordAudit(ctx context.Context, entry models.AuditLog) error
	RecentLogs(ctx context.Context, subject string, all bool, limit int) ([]models.AuditLog, error)
}
