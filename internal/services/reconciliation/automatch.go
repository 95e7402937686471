package reconciliation

import (
	"encoding/json"

	"gorm.io/datatypes"

	"bank-reconciliation-backend/internal/models"
	"bank-reconciliation-backend/internal/services/matching"
)

// AutoMatchAll walks every unreconciled transaction, ranks the candidates
// for it, and applies the best suggestion when its confidence clears the
// auto-accept threshold. All other transactions pass through unchanged.
// It returns a new snapshot plus the number of transactions matched.
//
// Candidates are not removed from the pool once matched: the same item may
// be linked from more than one transaction. There is no exclusivity
// bookkeeping; callers that need one-to-one matching must enforce it
// themselves.
func AutoMatchAll(txs []models.BankTransaction, candidates []models.MatchableItem, opts matching.Options) ([]models.BankTransaction, int) {
	out := make([]models.BankTransaction, len(txs))
	copy(out, txs)

	matched := 0
	for i := range out {
		if out[i].ReconciliationStatus != models.StatusUnreconciled {
			continue
		}

		suggestions := matching.SuggestWith(out[i], candidates, opts)
		if len(suggestions) == 0 || suggestions[0].Confidence < opts.AutoAcceptThreshold {
			continue
		}

		best := suggestions[0]
		out[i] = applyMatch(out[i], best)
		matched++
	}
	return out, matched
}

// applyMatch links the suggestion and records its confidence and reasons
// on the transaction.
func applyMatch(tx models.BankTransaction, suggestion matching.SuggestedMatch) models.BankTransaction {
	tx = Match(tx, suggestion.Item)
	tx.ConfidenceScore = suggestion.Confidence
	tx.MatchDetails = matchDetails(suggestion)
	return tx
}

func matchDetails(suggestion matching.SuggestedMatch) datatypes.JSON {
	details, _ := json.Marshal(map[string]interface{}{
		"item_type":  suggestion.Item.Type,
		"item_id":    suggestion.Item.ID.String(),
		"confidence": suggestion.Confidence,
		"reasons":    suggestion.MatchReasons,
	})
	return datatypes.JSON(details)
}
