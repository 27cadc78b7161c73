package extract

import "strings"

// numericFields are whitelist fields holding amounts, weights or counts.
// Their values get uniform numeric cleanup across every strategy.
var numericFields = map[string]bool{
	"declared_value":     true,
	"gross_weight":       true,
	"net_weight":         true,
	"unit_price":         true,
	"total_value":        true,
	"number_of_packages": true,
}

var unitSuffixes = []string{"kgs", "kg", "kilos", "lbs", "usd", "php", "eur"}

// CleanNumeric strips thousands separators, currency symbols and unit
// suffixes from a raw numeric capture.
func CleanNumeric(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimLeft(s, "$₱€£ ")
	lower := strings.ToLower(s)
	for _, suffix := range unitSuffixes {
		if strings.HasSuffix(lower, suffix) {
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}
	return strings.TrimSpace(s)
}

// Normalize canonicalizes a raw extracted value for storage. Numeric fields
// get CleanNumeric; everything else is trimmed verbatim.
func Normalize(fieldName, raw string) string {
	if numericFields[fieldName] {
		return CleanNumeric(raw)
	}
	return strings.TrimSpace(raw)
}
