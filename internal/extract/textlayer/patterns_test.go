package textlayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"declara/internal/domain"
)

func TestMatchFieldsRegexHit(t *testing.T) {
	text := "GOODS DECLARATION\nDeclarant: Acme Customs Brokerage\nHS Code: 8471300000\n"

	out := MatchFields(text, domain.DocTypeGD)

	declarant, ok := out["declarant_name"]
	require.True(t, ok)
	assert.Equal(t, "Acme Customs Brokerage", declarant.Value)
	assert.Equal(t, PatternConfidence, declarant.Confidence)
	assert.Equal(t, domain.SourcePattern, declarant.Source)

	hs, ok := out["hs_code"]
	require.True(t, ok)
	assert.Equal(t, "8471300000", hs.Value)
	assert.Equal(t, PatternConfidence, hs.Confidence)
}

func TestMatchFieldsCurrencyPrefixUsesAmountGroup(t *testing.T) {
	text := "Declared Value: USD 12,500.00\n"

	out := MatchFields(text, domain.DocTypeGD)

	dv, ok := out["declared_value"]
	require.True(t, ok)
	assert.Equal(t, "12,500.00", dv.RawValue, "amount, not the currency token")
	assert.Equal(t, "12500.00", dv.Value)
	assert.Equal(t, PatternConfidence, dv.Confidence)
}

func TestMatchFieldsCurrencyPrefixAbsent(t *testing.T) {
	text := "Declared Value: 9,800.50\n"

	out := MatchFields(text, domain.DocTypeGD)

	dv, ok := out["declared_value"]
	require.True(t, ok)
	assert.Equal(t, "9800.50", dv.Value)
}

func TestMatchFieldsProximityFallback(t *testing.T) {
	// No regex pattern tolerates '=', so this only resolves by line proximity.
	text := "Summary sheet\ndeclared value = 500\n"

	out := MatchFields(text, domain.DocTypeGD)

	dv, ok := out["declared_value"]
	require.True(t, ok)
	assert.Equal(t, "500", dv.Value)
	assert.Equal(t, ProximityConfidence, dv.Confidence)
	assert.Equal(t, domain.SourceProximity, dv.Source)
}

func TestMatchFieldsMissIsOmitted(t *testing.T) {
	text := "Declarant: Acme Customs Brokerage\n"

	out := MatchFields(text, domain.DocTypeGD)

	_, ok := out["country_of_origin"]
	assert.False(t, ok, "unmatched field must be absent, not empty")
}

func TestMatchFieldsCollapsesWhitespace(t *testing.T) {
	text := "Invoice   No:   INV-2026-0042\nGrand   Total: PHP   56,000.00\n"

	out := MatchFields(text, domain.DocTypeInvoice)

	inv, ok := out["invoice_number"]
	require.True(t, ok)
	assert.Equal(t, "INV-2026-0042", inv.Value)

	total, ok := out["total_value"]
	require.True(t, ok)
	assert.Equal(t, "56000.00", total.Value)
}

func TestMatchFieldsPackingList(t *testing.T) {
	text := "PACKING LIST\nNumber of Packages: 14\nNet Weight: 230.5 kg\nGross Weight: 250 kg\n"

	out := MatchFields(text, domain.DocTypePackingList)

	assert.Equal(t, "14", out["number_of_packages"].Value)
	assert.Equal(t, "230.5", out["net_weight"].Value)
	assert.Equal(t, "250", out["gross_weight"].Value)
}

func TestMatchFieldsAWB(t *testing.T) {
	text := "AIR WAYBILL\nAWB No: 618-12345675\nShipper: Pacific Exports Ltd\nConsignee: Manila Trading Corp\n"

	out := MatchFields(text, domain.DocTypeAWB)

	assert.Equal(t, "618-12345675", out["awb_number"].Value)
	assert.Equal(t, "Pacific Exports Ltd", out["shipper"].Value)
	assert.Equal(t, "Manila Trading Corp", out["consignee"].Value)
}
