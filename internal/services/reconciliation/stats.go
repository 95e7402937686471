package reconciliation

import (
	"math"

	"bank-reconciliation-backend/internal/models"
)

type ReconciliationStats struct {
	Total        int `json:"total"`
	Unreconciled int `json:"unreconciled"`
	Matched      int `json:"matched"`
	Reconciled   int `json:"reconciled"`
	Disputed     int `json:"disputed"`

	TotalAmount        float64 `json:"total_amount"`
	UnreconciledAmount float64 `json:"unreconciled_amount"`
}

// ComputeStats derives per-status counts and absolute amount sums from the
// given snapshot. Statuses are mutually exclusive, so the counts sum to
// Total.
func ComputeStats(txs []models.BankTransaction) ReconciliationStats {
	var stats ReconciliationStats

	for _, tx := range txs {
		stats.Total++
		stats.TotalAmount += math.Abs(tx.Amount)

		switch tx.ReconciliationStatus {
		case models.StatusUnreconciled:
			stats.Unreconciled++
			stats.UnreconciledAmount += math.Abs(tx.Amount)
		case models.StatusMatched:
			stats.Matched++
		case models.StatusReconciled:
			stats.Reconciled++
		case models.StatusDisputed:
			stats.Disputed++
		}
	}
	return stats
}
