package repository

import (
	"bank-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BankTransactionRepository struct {
	db *gorm.DB
}

func NewBankTransactionRepository(db *gorm.DB) *BankTransactionRepository {
	return &BankTransactionRepository{db: db}
}

// Expose DB if needed
func (r *BankTransactionRepository) DB() *gorm.DB {
	return r.db
}

// GetAll returns every transaction in deterministic date order.
func (r *BankTransactionRepository) GetAll() ([]models.BankTransaction, error) {
	var txs []models.BankTransaction
	err := r.db.Order("date ASC, id ASC").Find(&txs).Error
	return txs, err
}

// ListByStatus filters by reconciliation status; an empty or "all" status
// returns everything.
func (r *BankTransactionRepository) ListByStatus(status string) ([]models.BankTransaction, error) {
	query := r.db.Order("date ASC, id ASC")
	if status != "" && status != "all" {
		query = query.Where("reconciliation_status = ?", status)
	}

	var txs []models.BankTransaction
	err := query.Find(&txs).Error
	return txs, err
}

func (r *BankTransactionRepository) GetByID(id uuid.UUID) (*models.BankTransaction, error) {
	var tx models.BankTransaction
	if err := r.db.First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *BankTransactionRepository) Save(tx *models.BankTransaction) error {
	return r.db.Save(tx).Error
}
