package extract

import "declara/internal/domain"

// whitelists is the closed per-type field set, in display order. Extraction
// and the reconciliation store never write a field outside it.
var whitelists = map[domain.DocumentType][]string{
	domain.DocTypeGD: {
		"declarant_name", "consignee", "hs_code",
		"declared_value", "gross_weight", "country_of_origin",
	},
	domain.DocTypeInvoice: {
		"invoice_number", "invoice_date", "description_of_goods",
		"unit_price", "total_value",
	},
	domain.DocTypePackingList: {
		"number_of_packages", "net_weight", "gross_weight",
	},
	domain.DocTypeAWB: {
		"awb_number", "shipper", "consignee", "gross_weight",
	},
}

// Whitelist returns the ordered field names legal for a document type.
func Whitelist(t domain.DocumentType) []string {
	return whitelists[t]
}

// InWhitelist reports whether field is legal for the document type.
func InWhitelist(t domain.DocumentType, field string) bool {
	for _, f := range whitelists[t] {
		if f == field {
			return true
		}
	}
	return false
}

// WhitelistFor looks up the document type owning a document and reports field
// legality; shared by the override path so broker edits obey the same closed
// set as extraction.
func WhitelistFor(t domain.DocumentType) map[string]bool {
	set := make(map[string]bool, len(whitelists[t]))
	for _, f := range whitelists[t] {
		set[f] = true
	}
	return set
}
