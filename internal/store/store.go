package store

import (
	"context"
	"fmt"
	"time"

	"aesgcm/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store persists generated vectors, validation runs and the audit trail.
type Store struct {
	db *gorm.DB
}

// Open connects to postgres and migrates the schema.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store: empty DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	return New(db)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.Vector{}, &models.AuditLog{}, &models.ValidationRun{}); err != nil {
		return nil, fmt.Errorf("store: automigrate: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveVectors inserts rows in one transaction. Missing IDs and timestamps
// are filled in.
func (s *Store) SaveVectors(ctx context.Context, rows []models.Vector) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.NewString()
		}
		if rows[i].CreatedAt.IsZero() {
			rows[i].CreatedAt = now
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	})
}

func (s *Store) SaveValidation(ctx context.Context, run *models.ValidationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(run).Error
}

func (s *Store) RecordAudit(ctx context.Context, entry models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// RecentLogs returns the newest audit rows, for subject only unless all is set.
func (s *Store) RecentLogs(ctx context.Context, subject string, all bool, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var logs []models.AuditLog
	q := s.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if !all {
		q = q.Where("subject = ?", subject)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
