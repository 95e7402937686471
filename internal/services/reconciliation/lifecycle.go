package reconciliation

import (
	"time"

	"github.com/google/uuid"

	"bank-reconciliation-backend/internal/models"
)

// Lifecycle transitions. Every transition is valid from every status: the
// engine is operator-driven and permissive rather than strictly guarded.
// Transitions take and return transaction values so callers operate on
// snapshots with no hidden state.

// Match links tx to item and marks it matched. Re-matching an already
// matched or disputed transaction simply overwrites the link. Confidence
// and match details are reset; the caller records them when it has them.
func Match(tx models.BankTransaction, item models.MatchableItem) models.BankTransaction {
	tx.MatchedItemType = item.Type
	id := item.ID
	tx.MatchedItemID = &id
	tx.ReconciliationStatus = models.StatusMatched
	tx.ReconciledAt = nil
	tx.ConfidenceScore = 0
	tx.MatchDetails = nil
	return tx
}

// Unmatch clears the match link and returns tx to unreconciled. Calling it
// on an already unmatched transaction is a no-op.
func Unmatch(tx models.BankTransaction) models.BankTransaction {
	tx.MatchedItemType = ""
	tx.MatchedItemID = nil
	tx.ReconciliationStatus = models.StatusUnreconciled
	tx.ReconciledAt = nil
	tx.ConfidenceScore = 0
	tx.MatchDetails = nil
	return tx
}

// Reconcile marks tx reconciled and stamps ReconciledAt. It does not
// require a prior match: reconciling an unlinked transaction records a
// manual link (nil item id) so a reconciled transaction always carries one.
func Reconcile(tx models.BankTransaction) models.BankTransaction {
	if !tx.HasMatchLink() {
		tx.MatchedItemType = models.ItemTypeManual
		id := uuid.Nil
		tx.MatchedItemID = &id
	}
	tx.ReconciliationStatus = models.StatusReconciled
	now := time.Now()
	tx.ReconciledAt = &now
	return tx
}

// ReconcileAllMatched reconciles every transaction currently in matched
// status and leaves all others untouched. It returns the new snapshot and
// the number of transactions reconciled.
func ReconcileAllMatched(txs []models.BankTransaction) ([]models.BankTransaction, int) {
	out := make([]models.BankTransaction, len(txs))
	copy(out, txs)

	count := 0
	for i := range out {
		if out[i].ReconciliationStatus != models.StatusMatched {
			continue
		}
		out[i] = Reconcile(out[i])
		count++
	}
	return out, count
}

// Dispute marks tx disputed and stores the notes when given. An existing
// match link is kept so the dispute context stays visible.
func Dispute(tx models.BankTransaction, notes string) models.BankTransaction {
	tx.ReconciliationStatus = models.StatusDisputed
	if notes != "" {
		tx.Notes = notes
	}
	return tx
}

// Annotate sets the free-text notes without touching the status.
func Annotate(tx models.BankTransaction, notes string) models.BankTransaction {
	tx.Notes = notes
	return tx
}
