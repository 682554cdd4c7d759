package nlp

import "testing"

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "thousands separator", input: "5,000", want: "5000", ok: true},
		{name: "separator with decimals", input: "1,234,567.89", want: "1234567.89", ok: true},
		{name: "single comma as decimal", input: "1,27", want: "1.27", ok: true},
		{name: "plain integer", input: "5000", want: "5000", ok: true},
		{name: "spoken thousand", input: "5 thousand", want: "5000", ok: true},
		{name: "k suffix", input: "2k", want: "2000", ok: true},
		{name: "grand", input: "3 grand", want: "3000", ok: true},
		{name: "million", input: "1.5 million", want: "1500000", ok: true},
		{name: "m suffix", input: "2m", want: "2000000", ok: true},
		{name: "mixed case and spacing", input: "  5 Thousand ", want: "5000", ok: true},
		{name: "not an amount", input: "a lot of money", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeAmount(tt.input)
			if ok != tt.ok {
				t.Fatalf("expected recognized=%v, got %v (%q)", tt.ok, ok, got)
			}
			if ok && got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "punctuation stripped", input: "Confirm!", want: "confirm"},
		{name: "diacritics stripped", input: "Confírm, s'il vous plaît", want: "confirm s il vous plait"},
		{name: "whitespace collapsed", input: "  yes   please  ", want: "yes please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMatchConfirmation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Decision
	}{
		{name: "plain confirm", input: "confirm", want: DecisionConfirm},
		{name: "yes with punctuation", input: "Yes!", want: DecisionConfirm},
		{name: "proceed in a sentence", input: "please proceed with it", want: DecisionConfirm},
		{name: "authorize", input: "I authorize this", want: DecisionConfirm},
		{name: "plain cancel", input: "cancel", want: DecisionCancel},
		{name: "no", input: "no thanks", want: DecisionCancel},
		{name: "abort", input: "abort the whole thing", want: DecisionCancel},
		{name: "both words cancel wins", input: "yes, no, wait", want: DecisionCancel},
		{name: "word boundary respected", input: "the notes look nice", want: DecisionUnclear},
		{name: "unrelated speech", input: "what is the weather today", want: DecisionUnclear},
		{name: "empty", input: "", want: DecisionUnclear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchConfirmation(tt.input); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
