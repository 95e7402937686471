package matching

import (
	"math"
	"strings"

	"bank-reconciliation-backend/internal/models"
)

// Signal weights. The amount signal fires at most one tier; the rest are
// independent and additive. The total is capped at 100.
const (
	amountExactPoints   = 50
	amountClosePoints   = 30
	amountNearbyPoints  = 15
	referencePoints     = 25
	descriptionPerToken = 5
	descriptionMax      = 15
	contactPoints       = 20
	dateNearbyPoints    = 10
	dateSimilarPoints   = 5
)

const (
	amountExactEpsilon = 0.01
	amountCloseDelta   = 1.0
	amountNearbyRatio  = 0.05
	dateNearbyDays     = 3
	dateSimilarDays    = 7
	minTokenLength     = 3 // shared description tokens must be longer than this
)

// Score computes the confidence (0-100) that tx and item describe the same
// economic event, plus the human-readable reasons in evaluation order:
// amount, reference, description, counterparty, date. The output is
// deterministic for fixed inputs.
func Score(tx models.BankTransaction, item models.MatchableItem) (int, []string) {
	confidence := 0
	var reasons []string

	txAmount := math.Abs(tx.Amount)
	diff := math.Abs(math.Abs(item.Amount) - txAmount)
	switch {
	case diff < amountExactEpsilon:
		confidence += amountExactPoints
		reasons = append(reasons, "exact amount")
	case diff < amountCloseDelta:
		confidence += amountClosePoints
		reasons = append(reasons, "similar amount")
	case txAmount > 0 && diff/txAmount < amountNearbyRatio:
		confidence += amountNearbyPoints
		reasons = append(reasons, "amount nearby")
	}

	if containsEitherWay(tx.Reference, item.Reference) {
		confidence += referencePoints
		reasons = append(reasons, "reference matches")
	}

	if shared := sharedTokenCount(tx.Description, item.Description); shared > 0 {
		points := shared * descriptionPerToken
		if points > descriptionMax {
			points = descriptionMax
		}
		confidence += points
		reasons = append(reasons, "similar description")
	}

	if containsEitherWay(tx.Counterparty, item.ContactName) {
		confidence += contactPoints
		reasons = append(reasons, "contact matches")
	}

	days := math.Abs(tx.Date.Sub(item.Date).Hours() / 24)
	switch {
	case days <= dateNearbyDays:
		confidence += dateNearbyPoints
		reasons = append(reasons, "date nearby")
	case days <= dateSimilarDays:
		confidence += dateSimilarPoints
		reasons = append(reasons, "date similar")
	}

	if confidence > 100 {
		confidence = 100
	}
	return confidence, reasons
}

// containsEitherWay reports whether one non-empty string contains the other,
// case-insensitively, in either direction.
func containsEitherWay(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// sharedTokenCount counts the distinct whitespace-separated tokens longer
// than minTokenLength that appear in both descriptions, case-insensitively.
func sharedTokenCount(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(a)) {
		if len(tok) > minTokenLength {
			tokens[tok] = true
		}
	}

	count := 0
	for _, tok := range strings.Fields(strings.ToLower(b)) {
		if tokens[tok] {
			count++
			delete(tokens, tok)
		}
	}
	return count
}
