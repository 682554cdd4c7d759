package nlp

import "strings"

// Decision is the outcome of matching a transcript against the confirmation
// word lists.
type Decision int

const (
	DecisionUnclear Decision = iota
	DecisionConfirm
	DecisionCancel
)

var (
	confirmWords = []string{"confirm", "yes", "proceed", "approve", "authorize"}
	cancelWords  = []string{"cancel", "no", "stop", "abort", "reject"}
)

// MatchConfirmation classifies a transcript during an awaiting-confirmation
// turn. Text containing both an affirmative and a negative word counts as a
// cancellation.
func MatchConfirmation(transcript string) Decision {
	normalized := " " + CleanText(transcript) + " "

	if containsAny(normalized, cancelWords) {
		return DecisionCancel
	}
	if containsAny(normalized, confirmWords) {
		return DecisionConfirm
	}
	return DecisionUnclear
}

func containsAny(normalized string, words []string) bool {
	for _, word := range words {
		if strings.Contains(normalized, " "+word+" ") {
			return true
		}
	}
	return false
}
