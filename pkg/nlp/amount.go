package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	separatorPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
	unitPattern      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(thousand|million|grand|k|m)$`)
	plainPattern     = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)
)

// NormalizeAmount turns the amount strings an interpreter hands back into a
// plain decimal string: "5,000" -> "5000", "1,27" -> "1.27", "5 thousand" ->
// "5000", "2k" -> "2000". The second return reports whether the input was
// recognized as an amount at all.
func NormalizeAmount(raw string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return "", false
	}

	if separatorPattern.MatchString(text) {
		return strings.ReplaceAll(text, ",", ""), true
	}

	if matches := unitPattern.FindStringSubmatch(text); len(matches) == 3 {
		num, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return "", false
		}
		multiplier := 1000.0
		if matches[2] == "million" || matches[2] == "m" {
			multiplier = 1000000
		}
		return formatAmount(num * multiplier), true
	}

	if plainPattern.MatchString(text) {
		// A single comma acts as a decimal separator here ("1,27" -> 1.27).
		normalized := strings.ReplaceAll(text, ",", ".")
		if _, err := strconv.ParseFloat(normalized, 64); err == nil {
			return normalized, true
		}
	}

	return "", false
}

func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
