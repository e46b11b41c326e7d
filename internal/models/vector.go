package models

import "time"

// Vector is one generated test record. Rows produced by the same request
// share a BatchID.
type Vector struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	BatchID   string `gorm:"type:uuid;index;not null" json:"batch_id"`
	Subject   string `gorm:"index;not null" json:"subject"`
	Algorithm string `gorm:"not null" json:"algorithm"`
	Mode      string `json:"mode"`      // ECB, CTR, GCM
	TestMode  string `json:"test_mode"` // KAT/MMT/MCT when applicable
	Direction string `json:"direction"` // ENCRYPT or DECRYPT
	KeyBits   int    `json:"key_bits"`

	Params JSONB `gorm:"type:jsonb" json:"params"` // key, iv, aad and other inputs

	InputHex  *string `json:"input_hex"`
	OutputHex *string `json:"output_hex"`
	TagHex    *string `json:"tag_hex,omitempty"`

	Status    string    `json:"status"` // ready, fail
	CreatedAt time.Time `json:"created_at"`
}

func (Vector) TableName() string { return "vectors" }
