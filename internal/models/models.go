package models

import "time"

type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Subject   string    `gorm:"index;not null" json:"subject"`
	Action    string    `gorm:"not null" json:"action"`
	Metadata  JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidationRun records the outcome of checking an uploaded vector file.
type ValidationRun struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Subject   string    `gorm:"index;not null" json:"subject"`
	Algorithm string    `gorm:"not null" json:"algorithm"`
	Total     int       `json:"total"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Failures  JSONB     `gorm:"type:jsonb" json:"failures"`
	CreatedAt time.Time `json:"created_at"`
}
