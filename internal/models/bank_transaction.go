package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Reconciliation lifecycle statuses for a bank transaction.
const (
	StatusUnreconciled = "unreconciled"
	StatusMatched      = "matched"
	StatusReconciled   = "reconciled"
	StatusDisputed     = "disputed"
)

type BankTransaction struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BankAccountID        uuid.UUID `gorm:"index"`
	BankAccountName      string
	Date                 time.Time `gorm:"index"`
	Amount               float64   `gorm:"index"`
	Description          string
	Reference            string
	Counterparty         string
	ReconciliationStatus string `gorm:"index"`
	MatchedItemType      string
	MatchedItemID        *uuid.UUID
	ConfidenceScore      int
	MatchDetails         datatypes.JSON
	ReconciledAt         *time.Time
	Notes                string
	CreatedAt            time.Time
}

// HasMatchLink reports whether the transaction carries a matched-item link.
// Both fields are set together or cleared together.
func (t *BankTransaction) HasMatchLink() bool {
	return t.MatchedItemType != "" && t.MatchedItemID != nil
}
