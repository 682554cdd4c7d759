package interpreter

import (
	"errors"
	"testing"
)

func TestParseFieldUpdates(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"amount": "5000", "recipientName": "John Doe"}`,
			want: map[string]string{"amount": "5000", "recipientName": "John Doe"},
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"amount\": \"5000\"}\n```",
			want: map[string]string{"amount": "5000"},
		},
		{
			name: "bare code fence",
			raw:  "```\n{\"bankName\": \"First Bank\"}\n```",
			want: map[string]string{"bankName": "First Bank"},
		},
		{
			name: "trailing comma tolerated",
			raw:  `{"amount": "5000", "currency": "NGN",}`,
			want: map[string]string{"amount": "5000", "currency": "NGN"},
		},
		{
			name: "bare number becomes string",
			raw:  `{"amount": 5000}`,
			want: map[string]string{"amount": "5000"},
		},
		{
			name: "boolean becomes string",
			raw:  `{"termsAccepted": true}`,
			want: map[string]string{"termsAccepted": "true"},
		},
		{
			name:    "prose instead of json",
			raw:     "Sure, I'll set the amount to 5000.",
			wantErr: true,
		},
		{
			name:    "nested object rejected",
			raw:     `{"amount": {"value": 5000}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFieldUpdates(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedResponse) {
					t.Fatalf("expected ErrMalformedResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for key, want := range tt.want {
				if got[key] != want {
					t.Fatalf("field %q: expected %q, got %q", key, want, got[key])
				}
			}
		})
	}
}

func TestNormalizeFieldUpdates(t *testing.T) {
	t.Run("amount normalized and currency defaulted", func(t *testing.T) {
		updates := map[string]string{"amount": "5,000"}
		if err := normalizeFieldUpdates(updates); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updates["amount"] != "5000" {
			t.Fatalf("expected normalized amount, got %q", updates["amount"])
		}
		if updates["currency"] != "NGN" {
			t.Fatalf("expected NGN default, got %q", updates["currency"])
		}
	})

	t.Run("explicit currency kept", func(t *testing.T) {
		updates := map[string]string{"amount": "100", "currency": "USD"}
		if err := normalizeFieldUpdates(updates); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updates["currency"] != "USD" {
			t.Fatalf("expected USD kept, got %q", updates["currency"])
		}
	})

	t.Run("spoken amount", func(t *testing.T) {
		updates := map[string]string{"amount": "5 thousand"}
		if err := normalizeFieldUpdates(updates); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updates["amount"] != "5000" {
			t.Fatalf("expected 5000, got %q", updates["amount"])
		}
	})

	t.Run("short account rejected", func(t *testing.T) {
		updates := map[string]string{"recipientAccount": "1234567"}
		if err := normalizeFieldUpdates(updates); !errors.Is(err, ErrInvalidAccount) {
			t.Fatalf("expected ErrInvalidAccount, got %v", err)
		}
	})

	t.Run("account trimmed", func(t *testing.T) {
		updates := map[string]string{"recipientAccount": " 12345678 "}
		if err := normalizeFieldUpdates(updates); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updates["recipientAccount"] != "12345678" {
			t.Fatalf("expected trimmed account, got %q", updates["recipientAccount"])
		}
	})
}

func TestGenerateConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		updates map[string]string
		want    string
	}{
		{
			name:    "amount and recipient",
			updates: map[string]string{"amount": "5000", "recipientName": "John Doe"},
			want:    "Amount: ₦5,000, Recipient: John Doe.",
		},
		{
			name:    "account and bank",
			updates: map[string]string{"recipientAccount": "12345678", "bankName": "First Bank"},
			want:    "Account: 12345678, Bank: First Bank.",
		},
		{
			name:    "large amount grouped",
			updates: map[string]string{"amount": "1234567.89"},
			want:    "Amount: ₦1,234,567.89.",
		},
		{
			name:    "no recognized fields",
			updates: map[string]string{"transferDate": ""},
			want:    "Changes applied.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateConfirmation(tt.updates); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
