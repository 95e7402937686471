package reconciliation

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bank-reconciliation-backend/internal/models"
	"bank-reconciliation-backend/internal/repository"
	"bank-reconciliation-backend/internal/services/matching"
)

// ReconciliationService drives the pure engine against the record store.
// Every state transition is persisted and written to the match audit log.
type ReconciliationService struct {
	transactionRepo *repository.BankTransactionRepository
	itemRepo        *repository.MatchableItemRepository
	db              *gorm.DB
	opts            matching.Options
}

func NewReconciliationService(
	transactionRepo *repository.BankTransactionRepository,
	itemRepo *repository.MatchableItemRepository,
	opts matching.Options,
) *ReconciliationService {
	return &ReconciliationService{
		transactionRepo: transactionRepo,
		itemRepo:        itemRepo,
		db:              transactionRepo.DB(),
		opts:            opts,
	}
}

// SuggestionsFor ranks the full candidate pool against one transaction.
func (s *ReconciliationService) SuggestionsFor(txID uuid.UUID) ([]matching.SuggestedMatch, error) {
	tx, err := s.transactionRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.itemRepo.GetAll()
	if err != nil {
		return nil, err
	}

	return matching.SuggestWith(*tx, candidates, s.opts), nil
}

// MatchTransaction links a transaction to the given item by hand. The
// confidence and reasons for the chosen pair are recorded alongside.
func (s *ReconciliationService) MatchTransaction(txID uuid.UUID, itemType string, itemID uuid.UUID) (*models.BankTransaction, error) {
	tx, err := s.transactionRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByTypeAndID(itemType, itemID)
	if err != nil {
		return nil, err
	}

	prevType, prevID := tx.MatchedItemType, tx.MatchedItemID

	confidence, reasons := matching.Score(*tx, *item)
	updated := applyMatch(*tx, matching.SuggestedMatch{
		Item:         *item,
		Confidence:   confidence,
		MatchReasons: reasons,
	})

	if err := s.transactionRepo.Save(&updated); err != nil {
		return nil, err
	}

	s.audit(updated.ID, "match", prevType, prevID, updated.MatchedItemType, updated.MatchedItemID, "manual match")
	return &updated, nil
}

// UnmatchTransaction clears the link and returns the transaction to
// unreconciled.
func (s *ReconciliationService) UnmatchTransaction(txID uuid.UUID) (*models.BankTransaction, error) {
	tx, err := s.transactionRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}

	prevType, prevID := tx.MatchedItemType, tx.MatchedItemID

	updated := Unmatch(*tx)
	if err := s.transactionRepo.Save(&updated); err != nil {
		return nil, err
	}

	s.audit(updated.ID, "unmatch", prevType, prevID, "", nil, "")
	return &updated, nil
}

// ReconcileTransaction marks the transaction reconciled.
func (s *ReconciliationService) ReconcileTransaction(txID uuid.UUID) (*models.BankTransaction, error) {
	tx, err := s.transactionRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}

	prevType, prevID := tx.MatchedItemType, tx.MatchedItemID

	updated := Reconcile(*tx)
	if err := s.transactionRepo.Save(&updated); err != nil {
		return nil, err
	}

	s.audit(updated.ID, "reconcile", prevType, prevID, updated.MatchedItemType, updated.MatchedItemID, "")
	return &updated, nil
}

// ReconcileMatched bulk-reconciles every transaction currently in matched
// status and reports how many rows were updated.
func (s *ReconciliationService) ReconcileMatched() (int64, error) {
	result := s.db.Model(&models.BankTransaction{}).
		Where("reconciliation_status = ?", models.StatusMatched).
		Updates(map[string]interface{}{
			"reconciliation_status": models.StatusReconciled,
			"reconciled_at":         time.Now(),
		})

	return result.RowsAffected, result.Error
}

// DisputeTransaction marks the transaction disputed with optional notes.
// Any existing match link is kept.
func (s *ReconciliationService) DisputeTransaction(txID uuid.UUID, notes string) (*models.BankTransaction, error) {
	tx, err := s.transactionRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}

	updated := Dispute(*tx, notes)
	if err := s.transactionRepo.Save(&updated); err != nil {
		return nil, err
	}

	s.audit(updated.ID, "dispute", updated.MatchedItemType, updated.MatchedItemID, updated.MatchedItemType, updated.MatchedItemID, notes)
	return &updated, nil
}

// AnnotateTransaction sets the notes without touching the status.
func (s *ReconciliationService) AnnotateTransaction(txID uuid.UUID, notes string) (*models.BankTransaction, error) {
	tx, err := s.transactionRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}

	updated := Annotate(*tx, notes)
	if err := s.transactionRepo.Save(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AutoMatch runs the batch auto-matcher over the current store contents,
// persists the newly matched transactions, and returns how many matched.
func (s *ReconciliationService) AutoMatch() (int, error) {
	txs, err := s.transactionRepo.GetAll()
	if err != nil {
		return 0, err
	}

	candidates, err := s.itemRepo.GetAll()
	if err != nil {
		return 0, err
	}

	updated, matched := AutoMatchAll(txs, candidates, s.opts)

	for i := range updated {
		if updated[i].ReconciliationStatus == txs[i].ReconciliationStatus {
			continue
		}
		if err := s.transactionRepo.Save(&updated[i]); err != nil {
			return 0, err
		}
		s.audit(updated[i].ID, "auto_match", "", nil, updated[i].MatchedItemType, updated[i].MatchedItemID, "")
	}

	log.Printf("auto-match complete: %d of %d transactions matched", matched, len(txs))
	return matched, nil
}

// GetStats recomputes reconciliation statistics from the current store
// contents.
func (s *ReconciliationService) GetStats() (ReconciliationStats, error) {
	txs, err := s.transactionRepo.GetAll()
	if err != nil {
		return ReconciliationStats{}, err
	}
	return ComputeStats(txs), nil
}

// GetTransaction fetches a single transaction by id.
func (s *ReconciliationService) GetTransaction(txID uuid.UUID) (*models.BankTransaction, error) {
	return s.transactionRepo.GetByID(txID)
}

// ListTransactions returns transactions filtered by status.
func (s *ReconciliationService) ListTransactions(status string) ([]models.BankTransaction, error) {
	return s.transactionRepo.ListByStatus(status)
}

// MatchedItemFor resolves the transaction's match link. It returns
// (nil, nil) when there is no link, when the link is manual, or when the
// linked item no longer exists; a broken reference is a display concern,
// not an engine error.
func (s *ReconciliationService) MatchedItemFor(tx *models.BankTransaction) (*models.MatchableItem, error) {
	if !tx.HasMatchLink() || tx.MatchedItemType == models.ItemTypeManual {
		return nil, nil
	}

	item, err := s.itemRepo.GetByTypeAndID(tx.MatchedItemType, *tx.MatchedItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReconciliationService) audit(txID uuid.UUID, action, prevType string, prevID *uuid.UUID, newType string, newID *uuid.UUID, notes string) {
	entry := &models.MatchAuditLog{
		ID:               uuid.New(),
		TransactionID:    txID,
		Action:           action,
		PreviousItemType: prevType,
		PreviousItemID:   prevID,
		NewItemType:      newType,
		NewItemID:        newID,
		Notes:            notes,
		CreatedAt:        time.Now(),
	}

	if err := s.db.Create(entry).Error; err != nil {
		log.Printf("failed to write audit log for %s: %v", txID, err)
	}
}
