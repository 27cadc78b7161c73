package extract

import (
	"fmt"
	"time"

	"declara/internal/domain"
	"declara/internal/port"
)

// SyntheticConfidence sits below every genuine extraction so a later real
// run can still override a placeholder.
const SyntheticConfidence = 0.50

// SyntheticValue returns the deterministic placeholder for one whitelist
// field. Placeholders guarantee downstream computation never parses an
// absent number.
func SyntheticValue(fieldName string, now time.Time) string {
	switch fieldName {
	case "declarant_name":
		return "Broker/Declarant Name"
	case "consignee":
		return "Consignee/Importer Name"
	case "hs_code":
		return "0000000000"
	case "declared_value", "gross_weight", "net_weight", "unit_price", "total_value":
		return "0"
	case "country_of_origin":
		return "PH"
	case "invoice_number":
		millis := fmt.Sprintf("%d", now.UnixMilli())
		return "INV-" + millis[len(millis)-8:]
	case "invoice_date":
		return now.UTC().Format("2006-01-02")
	case "description_of_goods":
		return "Goods description"
	case "number_of_packages":
		return "1"
	case "awb_number":
		millis := fmt.Sprintf("%d", now.UnixMilli())
		return "AWB-" + millis[len(millis)-10:]
	case "shipper":
		return "Shipper Name"
	}
	return "[" + fieldName + "]"
}

// SyntheticFields returns placeholders for every whitelist field of a type.
func SyntheticFields(t domain.DocumentType, now time.Time) map[string]port.FieldResult {
	out := make(map[string]port.FieldResult)
	for _, name := range Whitelist(t) {
		v := SyntheticValue(name, now)
		out[name] = port.FieldResult{
			RawValue:   v,
			Value:      v,
			Confidence: SyntheticConfidence,
			Source:     domain.SourceSynthetic,
		}
	}
	return out
}
