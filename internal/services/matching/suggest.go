package matching

import (
	"sort"

	"bank-reconciliation-backend/internal/models"
)

// SuggestedMatch is an ephemeral ranking result. It is recomputed on demand
// and never persisted.
type SuggestedMatch struct {
	Item         models.MatchableItem `json:"item"`
	Confidence   int                  `json:"confidence"`
	MatchReasons []string             `json:"match_reasons"`
}

// Options tunes ranking and auto-matching.
type Options struct {
	// SuggestionThreshold drops candidates scoring below it outright.
	SuggestionThreshold int
	// AutoAcceptThreshold is the confidence at which the batch matcher
	// applies a match without human review.
	AutoAcceptThreshold int
	// MaxSuggestions caps the suggestions returned per transaction.
	MaxSuggestions int
}

// DefaultOptions returns the stock thresholds: 30 / 75 / top 5.
func DefaultOptions() Options {
	return Options{
		SuggestionThreshold: 30,
		AutoAcceptThreshold: 75,
		MaxSuggestions:      5,
	}
}

// Suggest ranks candidates against tx with the default options.
func Suggest(tx models.BankTransaction, candidates []models.MatchableItem) []SuggestedMatch {
	return SuggestWith(tx, candidates, DefaultOptions())
}

// SuggestWith scores tx against every candidate, drops those below the
// suggestion threshold, and returns the remainder sorted by descending
// confidence, truncated to MaxSuggestions. The sort is stable, so equal
// confidences keep candidate input order and the result is reproducible.
func SuggestWith(tx models.BankTransaction, candidates []models.MatchableItem, opts Options) []SuggestedMatch {
	var out []SuggestedMatch
	for _, candidate := range candidates {
		confidence, reasons := Score(tx, candidate)
		if confidence < opts.SuggestionThreshold {
			continue
		}
		out = append(out, SuggestedMatch{
			Item:         candidate,
			Confidence:   confidence,
			MatchReasons: reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	if len(out) > opts.MaxSuggestions {
		out = out[:opts.MaxSuggestions]
	}
	return out
}
