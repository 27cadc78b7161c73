package vision

import (
	"strings"

	"declara/internal/domain"
	"declara/internal/extract"
)

var docTypeNames = map[domain.DocumentType]string{
	domain.DocTypeGD:          "Goods Declaration (SAD/Customs Declaration)",
	domain.DocTypeInvoice:     "Commercial Invoice",
	domain.DocTypePackingList: "Packing List",
	domain.DocTypeAWB:         "Air Waybill / Airway Bill",
}

var fieldInstructions = map[domain.DocumentType]string{
	domain.DocTypeGD: `
- declarant_name: Find "Declarant", "Exporter", "Broker", or company name at top
- consignee: Find "Consignee", "Importer", "Buyer"
- hs_code: Find 8-10 digit number near "HS Code", "Tariff Code", "Classification"
- declared_value: Find "Declared Value", "FOB Value", "Customs Value" (extract number only)
- gross_weight: Find "Gross Weight", "Total Weight" (extract number only, remove "kg")
- country_of_origin: Find "Country of Origin", "Origin", "Made in" (extract country code or name)`,
	domain.DocTypeInvoice: `
- invoice_number: Find "Invoice No", "Invoice Number", "Commercial Invoice #"
- invoice_date: Find "Invoice Date", "Date" (convert to YYYY-MM-DD format)
- description_of_goods: Find "Description", "Goods", "Product Description"
- unit_price: Find "Unit Price", "Price per Unit" (extract number only)
- total_value: Find "Total", "Invoice Total", "Grand Total", "Amount" (extract number only)`,
	domain.DocTypePackingList: `
- number_of_packages: Find "No. of Packages", "Total Packages", "Cartons", "Boxes", "Pkgs" (extract number only)
- net_weight: Find "Net Weight", "N.W." (extract number only, remove "kg")
- gross_weight: Find "Gross Weight", "G.W.", "Total Weight" (extract number only, remove "kg")
IMPORTANT: Packing lists often have these in tables or at the bottom. Scan carefully!`,
	domain.DocTypeAWB: `
- awb_number: Find "AWB No", "Air Waybill Number", "MAWB", "Master Airway Bill" (usually 11-12 digits or format like "123-12345678")
- shipper: Find "Shipper", "From", "Consignor" (company name)
- consignee: Find "Consignee", "To", "Receiver" (company name)
- gross_weight: Find "Gross Weight", "Weight", "Chargeable Weight" (extract number only, remove "kg")
IMPORTANT: AWB numbers are usually at the top. Shipper/Consignee are in address blocks.`,
}

// BuildPrompt returns the extraction prompt for one customs document type.
func BuildPrompt(t domain.DocumentType) string {
	fields := extract.Whitelist(t)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, "- "+f)
	}

	return `You are a customs document OCR expert. This is a ` + docTypeNames[t] + `.

Extract ALL of these fields from the document:
` + strings.Join(lines, "\n") + `

FIELD-SPECIFIC INSTRUCTIONS:` + fieldInstructions[t] + `

GENERAL RULES:
- Scan the ENTIRE document - fields may be in headers, tables, footers, or margins
- For numbers: Extract digits only (remove currency symbols, units like "kg", commas)
- For names/companies: Extract full text including spaces and punctuation
- Look for variations: "No." = "Number", "Wt" = "Weight", "Qty" = "Quantity"
- If a field truly cannot be found after thorough search, use empty string ""

Return ONLY valid JSON with exact field names as keys. No markdown, no code blocks, no explanation.

Example: {"declarant_name": "ABC Corp", "hs_code": "8471300000", "declared_value": "12500"}`
}
