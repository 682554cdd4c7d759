package interpreter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"VoiceTransfer/pkg/nlp"
)

var (
	codeFenceOpen  = regexp.MustCompile("^```(?:json)?\\s*")
	codeFenceClose = regexp.MustCompile("\\s*```$")
	trailingComma  = regexp.MustCompile(`,\s*([}\]])`)
	accountPattern = regexp.MustCompile(`^\d{8,20}$`)
)

var fieldLabels = map[string]string{
	"recipientName":    "recipient name",
	"recipientAccount": "account number",
	"bankName":         "bank name",
	"amount":           "amount",
	"currency":         "currency",
	"reference":        "reference",
	"transferDate":     "transfer date",
}

// parseFieldUpdates decodes the model answer, tolerating markdown code fences
// and trailing commas. Numbers arrive either quoted or bare, so values decode
// through json.Number before becoming strings.
func parseFieldUpdates(raw string) (map[string]string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = codeFenceOpen.ReplaceAllString(cleaned, "")
	cleaned = codeFenceClose.ReplaceAllString(cleaned, "")
	cleaned = trailingComma.ReplaceAllString(cleaned, "$1")

	var decoded map[string]interface{}
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()
	if err := decoder.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}

	updates := make(map[string]string, len(decoded))
	for key, value := range decoded {
		switch v := value.(type) {
		case string:
			updates[key] = v
		case json.Number:
			updates[key] = v.String()
		case bool:
			updates[key] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("%w: field %q has unsupported type", ErrMalformedResponse, key)
		}
	}

	return updates, nil
}

// normalizeFieldUpdates applies the post-extraction rules: amounts become
// plain decimal strings, an amount without a currency defaults to NGN, and an
// extracted account must match the fixed digit pattern.
func normalizeFieldUpdates(updates map[string]string) error {
	if amount, ok := updates["amount"]; ok {
		if normalized, recognized := nlp.NormalizeAmount(amount); recognized {
			updates["amount"] = normalized
		}
		if _, hasCurrency := updates["currency"]; !hasCurrency {
			updates["currency"] = "NGN"
		}
	}

	if account, ok := updates["recipientAccount"]; ok {
		if !accountPattern.MatchString(strings.TrimSpace(account)) {
			return ErrInvalidAccount
		}
		updates["recipientAccount"] = strings.TrimSpace(account)
	}

	return nil
}

// generateConfirmation builds the spoken summary of applied updates, e.g.
// "Amount: ₦5,000, Recipient: John Doe."
func generateConfirmation(updates map[string]string) string {
	var parts []string
	if amount, ok := updates["amount"]; ok && amount != "" {
		parts = append(parts, "Amount: ₦"+groupThousands(amount))
	}
	if name, ok := updates["recipientName"]; ok && name != "" {
		parts = append(parts, "Recipient: "+name)
	}
	if account, ok := updates["recipientAccount"]; ok && account != "" {
		parts = append(parts, "Account: "+account)
	}
	if bank, ok := updates["bankName"]; ok && bank != "" {
		parts = append(parts, "Bank: "+bank)
	}

	if len(parts) == 0 {
		return "Changes applied."
	}
	return strings.Join(parts, ", ") + "."
}

func groupThousands(amount string) string {
	intPart := amount
	fracPart := ""
	if idx := strings.IndexByte(amount, '.'); idx >= 0 {
		intPart = amount[:idx]
		fracPart = amount[idx:]
	}

	if len(intPart) <= 3 {
		return intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + fracPart
}
