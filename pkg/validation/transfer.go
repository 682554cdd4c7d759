package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"VoiceTransfer/internal/entity"
)

type Result struct {
	IsValid   bool
	Errors    map[string]string
	Sanitized *entity.TransferFormData
}

var (
	namePattern    = regexp.MustCompile(`^[a-zA-Z\s\-']{3,100}$`)
	accountPattern = regexp.MustCompile(`^\d{8,20}$`)
	amountStrip    = regexp.MustCompile(`[^0-9.]`)
)

var validCurrencies = map[string]bool{
	"NGN": true, "USD": true, "EUR": true, "GBP": true, "JPY": true,
}

const (
	minAmount = 1
	// maxAmount applies regardless of currency; a 100,000 JPY cap and a
	// 100,000 USD cap are treated identically.
	maxAmount = 100000
)

var fieldLabels = map[string]string{
	"recipientName":    "Recipient name",
	"recipientAccount": "Account number",
	"bankName":         "Bank name",
	"amount":           "Amount",
	"currency":         "Currency",
	"termsAccepted":    "Terms acceptance",
}

// ValidateTransferRequest checks a candidate form state against the business
// rules. The input is never mutated; a sanitized copy is returned only when
// every rule passes.
func ValidateTransferRequest(data entity.TransferFormData) Result {
	errors := make(map[string]string)
	isValid := true

	fail := func(field, msg string) {
		if _, exists := errors[field]; !exists {
			errors[field] = msg
		}
		isValid = false
	}

	if strings.TrimSpace(data.RecipientName) == "" {
		fail("recipientName", fieldLabels["recipientName"]+" is required")
	}
	if strings.TrimSpace(data.RecipientAccount) == "" {
		fail("recipientAccount", fieldLabels["recipientAccount"]+" is required")
	}
	if strings.TrimSpace(data.BankName) == "" {
		fail("bankName", fieldLabels["bankName"]+" is required")
	}
	if strings.TrimSpace(data.Amount) == "" {
		fail("amount", fieldLabels["amount"]+" is required")
	}

	if data.RecipientName != "" && !namePattern.MatchString(data.RecipientName) {
		fail("recipientName", "Invalid recipient name format")
	}

	if data.RecipientAccount != "" && !accountPattern.MatchString(data.RecipientAccount) {
		fail("recipientAccount", "Account must be 8-20 digits")
	}

	if data.BankName != "" && len(data.BankName) < 3 {
		fail("bankName", "Bank name too short")
	}

	var sanitizedAmount float64
	var amountOK bool
	if data.Amount != "" {
		sanitizedAmount, amountOK = sanitizeAmount(data.Amount)
		switch {
		case !amountOK:
			fail("amount", "Invalid amount")
		case sanitizedAmount <= 0:
			fail("amount", "Amount must be positive")
		case sanitizedAmount > maxAmount:
			fail("amount", "Maximum transfer amount is 100,000")
		case sanitizedAmount < minAmount:
			fail("amount", "Minimum transfer amount is 1")
		}
	}

	if data.Currency != "" && !validCurrencies[data.Currency] {
		fail("currency", "Invalid currency")
	}

	if !data.TermsAccepted {
		fail("termsAccepted", "You must accept the terms")
	}

	if data.TransferDate != "" {
		transferDate, err := time.Parse("2006-01-02", data.TransferDate)
		if err != nil {
			fail("transferDate", "Invalid date format")
		} else {
			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if transferDate.Before(today) {
				fail("transferDate", "Date cannot be in the past")
			}
		}
	}

	result := Result{IsValid: isValid, Errors: errors}

	if isValid && amountOK {
		currency := data.Currency
		if currency == "" {
			currency = "NGN"
		}
		transferDate := data.TransferDate
		if transferDate == "" {
			transferDate = time.Now().Format("2006-01-02")
		}

		result.Sanitized = &entity.TransferFormData{
			RecipientName:    strings.TrimSpace(data.RecipientName),
			RecipientAccount: strings.TrimSpace(data.RecipientAccount),
			BankName:         strings.TrimSpace(data.BankName),
			Amount:           strconv.FormatFloat(sanitizedAmount, 'f', 2, 64),
			Currency:         currency,
			Reference:        strings.TrimSpace(data.Reference),
			TransferDate:     transferDate,
			TermsAccepted:    true,
		}
	}

	return result
}

func sanitizeAmount(value string) (float64, bool) {
	cleaned := amountStrip.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
