package models

import "time"

// ScanHistory is an append-only record of one product lookup. Query holds
// the barcode or search keyword the user sent, Result the full enriched
// response snapshot.
type ScanHistory struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	Email      string `gorm:"index;not null"`
	Query      string `gorm:"not null"`
	SearchType string
	Result     string `gorm:"type:jsonb"`
	CreatedAt  time.Time
}
