package entity

import "time"

type TransferFormData struct {
	RecipientName    string `json:"recipientName"`
	RecipientAccount string `json:"recipientAccount"`
	BankName         string `json:"bankName"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	Reference        string `json:"reference,omitempty"`
	TransferDate     string `json:"transferDate"`
	TermsAccepted    bool   `json:"termsAccepted"`
}

// NewTransferForm returns the initial form defaults; reset_form restores
// exactly this state.
func NewTransferForm() TransferFormData {
	return TransferFormData{
		Currency:     "NGN",
		TransferDate: time.Now().Format("2006-01-02"),
	}
}

// FieldValue looks a form field up by its wire name.
func (f TransferFormData) FieldValue(field string) (string, bool) {
	switch field {
	case "recipientName":
		return f.RecipientName, true
	case "recipientAccount":
		return f.RecipientAccount, true
	case "bankName":
		return f.BankName, true
	case "amount":
		return f.Amount, true
	case "currency":
		return f.Currency, true
	case "reference":
		return f.Reference, true
	case "transferDate":
		return f.TransferDate, true
	default:
		return "", false
	}
}

// SetField writes a form field by its wire name and reports whether the name
// was recognized.
func (f *TransferFormData) SetField(field string, value string) bool {
	switch field {
	case "recipientName":
		f.RecipientName = value
	case "recipientAccount":
		f.RecipientAccount = value
	case "bankName":
		f.BankName = value
	case "amount":
		f.Amount = value
	case "currency":
		f.Currency = value
	case "reference":
		f.Reference = value
	case "transferDate":
		f.TransferDate = value
	case "termsAccepted":
		f.TermsAccepted = value == "true"
	default:
		return false
	}
	return true
}
