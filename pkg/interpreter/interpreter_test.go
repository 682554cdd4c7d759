package interpreter

import (
	"context"
	"errors"
	"testing"
)

type stubModel struct {
	response string
	err      error
}

func (s *stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Intent
	}{
		{name: "set_field", response: "set_field", want: IntentSetField},
		{name: "uppercase tolerated", response: "SUBMIT_FORM", want: IntentSubmitForm},
		{name: "surrounding whitespace", response: "  help\n", want: IntentHelp},
		{name: "unrecognized tag maps to unknown", response: "make_coffee", want: IntentUnknown},
		{name: "prose maps to unknown", response: "The user wants to set a field.", want: IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &client{model: &stubModel{response: tt.response}}
			got, err := c.ClassifyIntent(context.Background(), "whatever")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClassifyIntentPropagatesModelError(t *testing.T) {
	sentinel := errors.New("connection refused")
	c := &client{model: &stubModel{err: sentinel}}

	if _, err := c.ClassifyIntent(context.Background(), "whatever"); !errors.Is(err, sentinel) {
		t.Fatalf("expected model error, got %v", err)
	}
}

func TestExtractFields(t *testing.T) {
	c := &client{model: &stubModel{response: `{"amount": "5,000", "recipientName": "John Doe"}`}}

	extraction, err := c.ExtractFields(context.Background(), "Transfer 5000 to John Doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extraction.FieldUpdates["amount"] != "5000" {
		t.Fatalf("expected normalized amount, got %q", extraction.FieldUpdates["amount"])
	}
	if extraction.FieldUpdates["currency"] != "NGN" {
		t.Fatalf("expected NGN default, got %q", extraction.FieldUpdates["currency"])
	}
	if extraction.Confirmation != "Amount: ₦5,000, Recipient: John Doe." {
		t.Fatalf("unexpected confirmation: %q", extraction.Confirmation)
	}
}

func TestFocusField(t *testing.T) {
	c := &client{model: &stubModel{response: "recipientAccount"}}

	extraction, err := c.FocusField(context.Background(), "go to the account field", map[string]string{
		"recipientAccount": "12345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := extraction.FieldUpdates["recipientAccount"]; !ok {
		t.Fatalf("expected focus on recipientAccount, got %v", extraction.FieldUpdates)
	}
	if extraction.Confirmation != "Editing account number" {
		t.Fatalf("unexpected confirmation: %q", extraction.Confirmation)
	}
}

func TestFocusFieldUnknown(t *testing.T) {
	c := &client{model: &stubModel{response: "favoriteColor"}}

	if _, err := c.FocusField(context.Background(), "go to the color field", nil); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}
