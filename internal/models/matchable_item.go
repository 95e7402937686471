package models

import (
	"time"

	"github.com/google/uuid"
)

// Matchable item types. ItemTypeManual marks a transaction reconciled by
// hand without a source document; it never appears in the candidate pool.
const (
	ItemTypeInvoice = "invoice"
	ItemTypeReceipt = "receipt"
	ItemTypeBooking = "booking"
	ItemTypeManual  = "manual"
)

type MatchableItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type        string    `gorm:"index"`
	Reference   string
	Description string
	Amount      float64 `gorm:"index"`
	Date        time.Time
	ContactName string
	Status      string
	CreatedAt   time.Time
}
