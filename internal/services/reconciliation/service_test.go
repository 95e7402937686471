package reconciliation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bank-reconciliation-backend/internal/models"
	"bank-reconciliation-backend/internal/repository"
	"bank-reconciliation-backend/internal/services/matching"
)

func setupService(t *testing.T) (*ReconciliationService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.BankTransaction{},
		&models.MatchableItem{},
		&models.MatchAuditLog{},
	))

	svc := NewReconciliationService(
		repository.NewBankTransactionRepository(db),
		repository.NewMatchableItemRepository(db),
		matching.DefaultOptions(),
	)
	return svc, db
}

func seedTransaction(t *testing.T, db *gorm.DB, tx models.BankTransaction) models.BankTransaction {
	t.Helper()
	tx.CreatedAt = time.Now()
	require.NoError(t, db.Create(&tx).Error)
	return tx
}

func seedItem(t *testing.T, db *gorm.DB, item models.MatchableItem) models.MatchableItem {
	t.Helper()
	item.CreatedAt = time.Now()
	require.NoError(t, db.Create(&item).Error)
	return item
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) models.BankTransaction {
	t.Helper()
	var tx models.BankTransaction
	require.NoError(t, db.First(&tx, "id = ?", id).Error)
	return tx
}

func auditEntries(t *testing.T, db *gorm.DB, txID uuid.UUID) []models.MatchAuditLog {
	t.Helper()
	var entries []models.MatchAuditLog
	require.NoError(t, db.Where("transaction_id = ?", txID).Order("created_at ASC").Find(&entries).Error)
	return entries
}

func TestServiceMatchWritesLinkAndAudit(t *testing.T) {
	svc, db := setupService(t)

	tx := seedTransaction(t, db, unreconciledTx(4500))
	tx.Reference = "RE-2026-0042"
	require.NoError(t, db.Save(&tx).Error)

	item := invoice(4500)
	item.Reference = "RE-2026-0042"
	item = seedItem(t, db, item)

	updated, err := svc.MatchTransaction(tx.ID, item.Type, item.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusMatched, updated.ReconciliationStatus)
	assert.Equal(t, item.ID, *updated.MatchedItemID)
	assert.GreaterOrEqual(t, updated.ConfidenceScore, 75)
	assert.NotEmpty(t, updated.MatchDetails)

	persisted := reload(t, db, tx.ID)
	assert.Equal(t, models.StatusMatched, persisted.ReconciliationStatus)

	entries := auditEntries(t, db, tx.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "match", entries[0].Action)
	assert.Equal(t, item.ID, *entries[0].NewItemID)
}

func TestServiceUnmatchClearsPersistedLink(t *testing.T) {
	svc, db := setupService(t)

	item := seedItem(t, db, invoice(100))
	tx := seedTransaction(t, db, unreconciledTx(100))

	_, err := svc.MatchTransaction(tx.ID, item.Type, item.ID)
	require.NoError(t, err)

	updated, err := svc.UnmatchTransaction(tx.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusUnreconciled, updated.ReconciliationStatus)
	assert.Nil(t, updated.MatchedItemID)

	entries := auditEntries(t, db, tx.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, "unmatch", entries[1].Action)
	assert.Equal(t, item.ID, *entries[1].PreviousItemID)
}

func TestServiceAutoMatchPersistsMatches(t *testing.T) {
	svc, db := setupService(t)

	confident := seedTransaction(t, db, models.BankTransaction{
		ID:                   uuid.New(),
		Date:                 testDate,
		Amount:               4500,
		Reference:            "RE-2026-0042",
		ReconciliationStatus: models.StatusUnreconciled,
	})
	hopeless := seedTransaction(t, db, unreconciledTx(77777))

	seedItem(t, db, models.MatchableItem{
		ID:        uuid.New(),
		Type:      models.ItemTypeInvoice,
		Amount:    4500,
		Reference: "RE-2026-0042",
		Date:      testDate,
	})

	matched, err := svc.AutoMatch()
	require.NoError(t, err)
	assert.Equal(t, 1, matched)

	assert.Equal(t, models.StatusMatched, reload(t, db, confident.ID).ReconciliationStatus)
	assert.Equal(t, models.StatusUnreconciled, reload(t, db, hopeless.ID).ReconciliationStatus)

	entries := auditEntries(t, db, confident.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "auto_match", entries[0].Action)
}

func TestServiceReconcileMatchedBulk(t *testing.T) {
	svc, db := setupService(t)

	item := seedItem(t, db, invoice(100))
	first := seedTransaction(t, db, Match(unreconciledTx(100), item))
	second := seedTransaction(t, db, Match(unreconciledTx(100), item))
	open := seedTransaction(t, db, unreconciledTx(300))

	count, err := svc.ReconcileMatched()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		tx := reload(t, db, id)
		assert.Equal(t, models.StatusReconciled, tx.ReconciliationStatus)
		assert.NotNil(t, tx.ReconciledAt)
	}
	assert.Equal(t, models.StatusUnreconciled, reload(t, db, open.ID).ReconciliationStatus)
}

func TestServiceDisputePersistsNotes(t *testing.T) {
	svc, db := setupService(t)

	tx := seedTransaction(t, db, unreconciledTx(100))

	updated, err := svc.DisputeTransaction(tx.ID, "duplicate booking")
	require.NoError(t, err)

	assert.Equal(t, models.StatusDisputed, updated.ReconciliationStatus)
	assert.Equal(t, "duplicate booking", reload(t, db, tx.ID).Notes)
}

func TestServiceMatchedItemFor(t *testing.T) {
	svc, db := setupService(t)

	item := seedItem(t, db, invoice(100))

	t.Run("resolves a valid link", func(t *testing.T) {
		tx := Match(unreconciledTx(100), item)

		resolved, err := svc.MatchedItemFor(&tx)
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, item.ID, resolved.ID)
	})

	t.Run("broken reference is a miss, not an error", func(t *testing.T) {
		ghost := invoice(100)
		tx := Match(unreconciledTx(100), ghost) // ghost was never stored

		resolved, err := svc.MatchedItemFor(&tx)
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("manual link has no item", func(t *testing.T) {
		tx := Reconcile(unreconciledTx(100))

		resolved, err := svc.MatchedItemFor(&tx)
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("unlinked transaction", func(t *testing.T) {
		tx := unreconciledTx(100)

		resolved, err := svc.MatchedItemFor(&tx)
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})
}

func TestServiceSuggestionsFor(t *testing.T) {
	svc, db := setupService(t)

	tx := seedTransaction(t, db, models.BankTransaction{
		ID:                   uuid.New(),
		Date:                 testDate,
		Amount:               100,
		Reference:            "RE-1",
		ReconciliationStatus: models.StatusUnreconciled,
	})

	strong := seedItem(t, db, models.MatchableItem{
		ID: uuid.New(), Type: models.ItemTypeInvoice, Amount: 100, Reference: "RE-1", Date: testDate,
	})
	seedItem(t, db, models.MatchableItem{
		ID: uuid.New(), Type: models.ItemTypeBooking, Amount: 90000, Date: testDate.AddDate(0, 0, 60),
	})

	suggestions, err := svc.SuggestionsFor(tx.ID)
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, strong.ID, suggestions[0].Item.ID)
	assert.GreaterOrEqual(t, suggestions[0].Confidence, 75)
}

func TestServiceGetStats(t *testing.T) {
	svc, db := setupService(t)

	item := seedItem(t, db, invoice(200))
	seedTransaction(t, db, unreconciledTx(-100))
	seedTransaction(t, db, Match(unreconciledTx(200), item))

	stats, err := svc.GetStats()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Unreconciled)
	assert.Equal(t, 1, stats.Matched)
	assert.InDelta(t, 300, stats.TotalAmount, 0.001)
	assert.InDelta(t, 100, stats.UnreconciledAmount, 0.001)
}
