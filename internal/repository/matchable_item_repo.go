package repository

import (
	"bank-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchableItemRepository struct {
	db *gorm.DB
}

func NewMatchableItemRepository(db *gorm.DB) *MatchableItemRepository {
	return &MatchableItemRepository{db: db}
}

// GetAll returns the full candidate pool in deterministic date order.
func (r *MatchableItemRepository) GetAll() ([]models.MatchableItem, error) {
	var items []models.MatchableItem
	err := r.db.Order("date ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *MatchableItemRepository) GetByID(id uuid.UUID) (*models.MatchableItem, error) {
	var item models.MatchableItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByTypeAndID resolves a match link to its item.
func (r *MatchableItemRepository) GetByTypeAndID(itemType string, id uuid.UUID) (*models.MatchableItem, error) {
	var item models.MatchableItem
	if err := r.db.First(&item, "type = ? AND id = ?", itemType, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
