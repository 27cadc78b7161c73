package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDutyRate(t *testing.T) {
	tests := []struct {
		hsCode string
		want   string
	}{
		{"8471300000", "0"},
		{"8473210000", "0"},
		{"8712000000", "0.05"},
		{"8703230000", "0.05"},
		{"6109100000", "0.03"},
		{"0101", "0.03"},
		{"12", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.hsCode, func(t *testing.T) {
			assert.True(t, DutyRate(tt.hsCode).Equal(d(tt.want)),
				"DutyRate(%q) = %s, want %s", tt.hsCode, DutyRate(tt.hsCode), tt.want)
		})
	}
}

func TestComputeITGoodsDutyExempt(t *testing.T) {
	result, err := Compute(Input{
		LineNo:        1,
		HSCode:        "8471300000",
		DeclaredValue: d("12500"),
		ExchangeRate:  d("58.50"),
	})
	require.NoError(t, err)

	assert.True(t, result.DeclaredValueLocal.Equal(d("731250")), "dutiable = %s", result.DeclaredValueLocal)
	assert.True(t, result.DutyRate.Equal(d("0")))
	assert.True(t, result.DutyAmount.Equal(d("0")))
	assert.True(t, result.VATAmount.Equal(d("87750")), "vat = %s", result.VATAmount)
	assert.True(t, result.TotalTax.Equal(d("87750")), "total = %s", result.TotalTax)
}

func TestComputeVehiclePrefix(t *testing.T) {
	result, err := Compute(Input{
		LineNo:        1,
		HSCode:        "8712000000",
		DeclaredValue: d("1000"),
		ExchangeRate:  d("56.00"),
	})
	require.NoError(t, err)

	assert.True(t, result.DeclaredValueLocal.Equal(d("56000")))
	assert.True(t, result.DutyRate.Equal(d("0.05")))
	assert.True(t, result.DutyAmount.Equal(d("2800")))
	assert.True(t, result.VATAmount.Equal(d("7056")))
	assert.True(t, result.TotalTax.Equal(d("9856")))
}

func TestComputeDeterministicAndExactTotal(t *testing.T) {
	in := Input{
		HSCode:        "6109100000",
		DeclaredValue: d("1234.56"),
		ExchangeRate:  d("57.123456"),
	}
	first, err := Compute(in)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := Compute(in)
		require.NoError(t, err)
		assert.True(t, again.DutyAmount.Equal(first.DutyAmount))
		assert.True(t, again.VATAmount.Equal(first.VATAmount))
		assert.True(t, again.TotalTax.Equal(first.TotalTax))
	}

	assert.True(t, first.TotalTax.Equal(first.DutyAmount.Add(first.VATAmount)),
		"total %s must equal duty %s + vat %s", first.TotalTax, first.DutyAmount, first.VATAmount)
}

func TestComputeRejectsBadInputs(t *testing.T) {
	_, err := Compute(Input{DeclaredValue: d("-1"), ExchangeRate: d("58.50")})
	assert.Error(t, err)

	_, err = Compute(Input{DeclaredValue: d("100"), ExchangeRate: d("0")})
	assert.Error(t, err)
}
