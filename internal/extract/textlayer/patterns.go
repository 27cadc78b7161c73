package textlayer

import (
	"regexp"
	"strings"

	"declara/internal/domain"
	"declara/internal/extract"
	"declara/internal/port"
)

// Confidence levels per match kind.
const (
	PatternConfidence   = 0.88
	ProximityConfidence = 0.65
)

// pattern is one regex attempt for a field. When currency is set the numeric
// value is the second capture group (the first captures an optional currency
// prefix).
type pattern struct {
	re       *regexp.Regexp
	currency bool
}

func pat(expr string) pattern         { return pattern{re: regexp.MustCompile(expr)} }
func currencyPat(expr string) pattern { return pattern{re: regexp.MustCompile(expr), currency: true} }

// fieldPatterns holds the ordered regex list per document type and field.
// First match wins.
var fieldPatterns = map[domain.DocumentType]map[string][]pattern{
	domain.DocTypeGD: {
		"declarant_name": {
			pat(`(?i)declarant[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
			pat(`(?i)exporter[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
			pat(`(?i)broker[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
		},
		"consignee": {
			pat(`(?i)consignee[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
			pat(`(?i)importer[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
			pat(`(?i)buyer[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
		},
		"hs_code": {
			pat(`(?i)hs[\s-]*code[:\s]*(\d{4,10})`),
			pat(`(?i)tariff[\s-]*code[:\s]*(\d{4,10})`),
			pat(`(?i)classification[:\s]*(\d{4,10})`),
			pat(`\b(\d{8,10})\b`),
		},
		"declared_value": {
			currencyPat(`(?i)declared[\s-]*value[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
			currencyPat(`(?i)customs[\s-]*value[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
			currencyPat(`(?i)fob[\s-]*value[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
			currencyPat(`(?i)total[\s-]*value[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
		},
		"gross_weight": {
			pat(`(?i)gross[\s-]*weight[:\s]*([\d,]+\.?\d*)\s*(?:kg|kgs|kilos)?`),
			pat(`(?i)total[\s-]*weight[:\s]*([\d,]+\.?\d*)\s*(?:kg|kgs)?`),
		},
		"country_of_origin": {
			pat(`(?i)country[\s-]*of[\s-]*origin[:\s]+([A-Z]{2,3}|[A-Z][a-z]{2,20})`),
			pat(`(?i)origin[:\s]+([A-Z]{2,3}|[A-Z][a-z]{2,20})`),
			pat(`(?i)made[\s-]*in[:\s]+([A-Z]{2,3}|[A-Z][a-z]{2,20})`),
		},
	},
	domain.DocTypeInvoice: {
		"invoice_number": {
			pat(`(?i)invoice[\s-]*(?:no|number|#)[:\s]*([A-Z0-9-]{3,30})`),
			pat(`(?i)\b(INV[A-Z0-9-]{3,20})\b`),
			pat(`(?i)commercial[\s-]*invoice[:\s]*([A-Z0-9-]{3,30})`),
		},
		"invoice_date": {
			pat(`(?i)invoice[\s-]*date[:\s]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
			pat(`(?i)date[:\s]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
			pat(`(\d{4}-\d{2}-\d{2})`),
		},
		"description_of_goods": {
			pat(`(?i)description[:\s]+([A-Za-z0-9 ,.\-()]{10,150})`),
			pat(`(?i)goods[:\s]+([A-Za-z0-9 ,.\-()]{10,150})`),
			pat(`(?i)product[:\s]+([A-Za-z0-9 ,.\-()]{10,150})`),
		},
		"unit_price": {
			currencyPat(`(?i)unit[\s-]*price[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
			currencyPat(`(?i)price[\s-]*per[\s-]*unit[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
		},
		"total_value": {
			currencyPat(`(?i)total[\s-]*(?:amount|value)[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
			currencyPat(`(?i)invoice[\s-]*total[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
			currencyPat(`(?i)grand[\s-]*total[:\s]*(USD|PHP|EUR)?\s*([\d,]+\.?\d*)`),
		},
	},
	domain.DocTypePackingList: {
		"number_of_packages": {
			pat(`(?i)(?:no\.|number)[\s-]*of[\s-]*packages[:\s]*(\d+)`),
			pat(`(?i)total[\s-]*packages[:\s]*(\d+)`),
			pat(`(?i)packages[:\s]*(\d+)`),
			pat(`(?i)cartons[:\s]*(\d+)`),
		},
		"net_weight": {
			pat(`(?i)net[\s-]*weight[:\s]*([\d,]+\.?\d*)\s*(?:kg|kgs)?`),
		},
		"gross_weight": {
			pat(`(?i)gross[\s-]*weight[:\s]*([\d,]+\.?\d*)\s*(?:kg|kgs)?`),
			pat(`(?i)total[\s-]*weight[:\s]*([\d,]+\.?\d*)\s*(?:kg|kgs)?`),
		},
	},
	domain.DocTypeAWB: {
		"awb_number": {
			pat(`(?i)awb[\s-]*(?:no|number|#)?[:\s]*([A-Z0-9-]{5,30})`),
			pat(`(?i)air[\s-]*waybill[:\s]*([A-Z0-9-]{5,30})`),
			pat(`(?i)waybill[:\s]*([A-Z0-9-]{5,30})`),
		},
		"shipper": {
			pat(`(?i)shipper[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
			pat(`(?i)from[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
		},
		"consignee": {
			pat(`(?i)consignee[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
			pat(`(?i)to[:\s]+([A-Z][A-Za-z &.,'-]{3,60})`),
		},
		"gross_weight": {
			pat(`(?i)gross[\s-]*weight[:\s]*([\d,]+\.?\d*)\s*(?:kg|kgs)?`),
			pat(`(?i)weight[:\s]*([\d,]+\.?\d*)\s*(?:kg|kgs)?`),
		},
	},
}

// MatchFields applies the per-type pattern lists to an extracted text layer.
// Regex hits score 0.88; the line-proximity fallback scores 0.65; true
// misses are omitted from the result, never stored as empty.
func MatchFields(rawText string, docType domain.DocumentType) map[string]port.FieldResult {
	spaced := regexp.MustCompile(`[ \t]+`).ReplaceAllString(rawText, " ")
	text := strings.TrimSpace(spaced)

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	out := make(map[string]port.FieldResult)
	for _, name := range extract.Whitelist(docType) {
		if fr, ok := matchField(name, text, lines, fieldPatterns[docType][name]); ok {
			out[name] = fr
		}
	}
	return out
}

func matchField(fieldName, text string, lines []string, patterns []pattern) (port.FieldResult, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		captureIdx := 1
		if p.currency && len(m) > 2 && m[2] != "" {
			captureIdx = 2
		}
		if captureIdx >= len(m) || m[captureIdx] == "" {
			continue
		}
		raw := strings.TrimSpace(m[captureIdx])
		return port.FieldResult{
			RawValue:   raw,
			Value:      extract.Normalize(fieldName, raw),
			Confidence: PatternConfidence,
			Source:     domain.SourcePattern,
		}, true
	}

	// Proximity fallback: find the underscore-free field name on a line and
	// take the first token after a ':' or '='.
	fieldKey := strings.ReplaceAll(fieldName, "_", " ")
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), fieldKey) {
			continue
		}
		parts := strings.FieldsFunc(line, func(r rune) bool { return r == ':' || r == '=' })
		if len(parts) < 2 {
			continue
		}
		tokens := strings.Fields(strings.TrimSpace(parts[1]))
		if len(tokens) == 0 {
			continue
		}
		candidate := tokens[0]
		if candidate == "" || len(candidate) >= 100 {
			continue
		}
		return port.FieldResult{
			RawValue:   candidate,
			Value:      extract.Normalize(fieldName, candidate),
			Confidence: ProximityConfidence,
			Source:     domain.SourceProximity,
		}, true
	}

	return port.FieldResult{}, false
}
