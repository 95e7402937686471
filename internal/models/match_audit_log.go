package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchAuditLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID    uuid.UUID `gorm:"index"`
	Action           string
	PreviousItemType string
	PreviousItemID   *uuid.UUID
	NewItemType      string
	NewItemID        *uuid.UUID
	Notes            string
	CreatedAt        time.Time
}
