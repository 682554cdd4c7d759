package validation

import (
	"testing"
	"time"

	"VoiceTransfer/internal/entity"
)

func validForm() entity.TransferFormData {
	return entity.TransferFormData{
		RecipientName:    "John Doe",
		RecipientAccount: "12345678",
		BankName:         "First Bank",
		Amount:           "5000",
		Currency:         "NGN",
		TransferDate:     time.Now().Format("2006-01-02"),
		TermsAccepted:    true,
	}
}

func TestValidateTransferRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*entity.TransferFormData)
		wantValid bool
		wantField string
	}{
		{
			name:      "valid form",
			mutate:    func(f *entity.TransferFormData) {},
			wantValid: true,
		},
		{
			name:      "amount at lower boundary",
			mutate:    func(f *entity.TransferFormData) { f.Amount = "1" },
			wantValid: true,
		},
		{
			name:      "amount at upper boundary",
			mutate:    func(f *entity.TransferFormData) { f.Amount = "100000" },
			wantValid: true,
		},
		{
			name:      "amount above maximum",
			mutate:    func(f *entity.TransferFormData) { f.Amount = "100001" },
			wantValid: false,
			wantField: "amount",
		},
		{
			name:      "amount zero",
			mutate:    func(f *entity.TransferFormData) { f.Amount = "0" },
			wantValid: false,
			wantField: "amount",
		},
		{
			name:      "amount with currency formatting",
			mutate:    func(f *entity.TransferFormData) { f.Amount = "₦5,000" },
			wantValid: true,
		},
		{
			name:      "seven digit account rejected",
			mutate:    func(f *entity.TransferFormData) { f.RecipientAccount = "1234567" },
			wantValid: false,
			wantField: "recipientAccount",
		},
		{
			name:      "twenty digit account accepted",
			mutate:    func(f *entity.TransferFormData) { f.RecipientAccount = "12345678901234567890" },
			wantValid: true,
		},
		{
			name:      "account with letters rejected",
			mutate:    func(f *entity.TransferFormData) { f.RecipientAccount = "1234abcd" },
			wantValid: false,
			wantField: "recipientAccount",
		},
		{
			name:      "name with apostrophe and hyphen",
			mutate:    func(f *entity.TransferFormData) { f.RecipientName = "Mary-Jane O'Brien" },
			wantValid: true,
		},
		{
			name:      "name too short",
			mutate:    func(f *entity.TransferFormData) { f.RecipientName = "Jo" },
			wantValid: false,
			wantField: "recipientName",
		},
		{
			name:      "name with digits rejected",
			mutate:    func(f *entity.TransferFormData) { f.RecipientName = "John 2" },
			wantValid: false,
			wantField: "recipientName",
		},
		{
			name:      "bank name too short",
			mutate:    func(f *entity.TransferFormData) { f.BankName = "AB" },
			wantValid: false,
			wantField: "bankName",
		},
		{
			name:      "unsupported currency",
			mutate:    func(f *entity.TransferFormData) { f.Currency = "CAD" },
			wantValid: false,
			wantField: "currency",
		},
		{
			name:      "terms not accepted",
			mutate:    func(f *entity.TransferFormData) { f.TermsAccepted = false },
			wantValid: false,
			wantField: "termsAccepted",
		},
		{
			name: "past transfer date",
			mutate: func(f *entity.TransferFormData) {
				f.TransferDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
			},
			wantValid: false,
			wantField: "transferDate",
		},
		{
			name: "future transfer date",
			mutate: func(f *entity.TransferFormData) {
				f.TransferDate = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
			},
			wantValid: true,
		},
		{
			name:      "malformed date",
			mutate:    func(f *entity.TransferFormData) { f.TransferDate = "next tuesday" },
			wantValid: false,
			wantField: "transferDate",
		},
		{
			name:      "missing recipient",
			mutate:    func(f *entity.TransferFormData) { f.RecipientName = "" },
			wantValid: false,
			wantField: "recipientName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			result := ValidateTransferRequest(form)
			if result.IsValid != tt.wantValid {
				t.Fatalf("expected valid=%v, got %v (errors: %v)", tt.wantValid, result.IsValid, result.Errors)
			}
			if !tt.wantValid {
				if _, ok := result.Errors[tt.wantField]; !ok {
					t.Fatalf("expected error on %q, got %v", tt.wantField, result.Errors)
				}
				if result.Sanitized != nil {
					t.Fatal("invalid form must not produce sanitized output")
				}
			}
		})
	}
}

func TestValidateTransferRequestSanitizes(t *testing.T) {
	form := validForm()
	form.RecipientName = "  John Doe  "
	form.Amount = "₦5,000"
	form.Currency = ""
	form.TransferDate = ""

	result := ValidateTransferRequest(form)
	if !result.IsValid {
		t.Fatalf("expected valid form, got errors: %v", result.Errors)
	}
	if result.Sanitized == nil {
		t.Fatal("expected sanitized output")
	}
	if result.Sanitized.RecipientName != "John Doe" {
		t.Fatalf("expected trimmed name, got %q", result.Sanitized.RecipientName)
	}
	if result.Sanitized.Amount != "5000.00" {
		t.Fatalf("expected normalized amount, got %q", result.Sanitized.Amount)
	}
	if result.Sanitized.Currency != "NGN" {
		t.Fatalf("expected NGN default, got %q", result.Sanitized.Currency)
	}
	if result.Sanitized.TransferDate != time.Now().Format("2006-01-02") {
		t.Fatalf("expected today as default date, got %q", result.Sanitized.TransferDate)
	}

	if form.RecipientName != "  John Doe  " {
		t.Fatal("input form must not be mutated")
	}
}
