package tax

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// VATRate is the fixed 12% import VAT rate.
var VATRate = decimal.NewFromFloat(0.12)

// Duty rates by HS prefix class.
var (
	dutyRateExempt   = decimal.Zero
	dutyRateVehicles = decimal.NewFromFloat(0.05)
	dutyRateGeneral  = decimal.NewFromFloat(0.03)
)

// Input is one declaration line with an already-resolved exchange rate.
type Input struct {
	LineNo        int
	Description   string
	HSCode        string
	Currency      string
	DeclaredValue decimal.Decimal
	ExchangeRate  decimal.Decimal
	RateSource    string
}

// Result holds the computed duty and VAT chain for one line. TotalTax is
// always exactly DutyAmount + VATAmount.
type Result struct {
	LineNo             int
	Description        string
	HSCode             string
	Currency           string
	DeclaredValue      decimal.Decimal
	ExchangeRate       decimal.Decimal
	DeclaredValueLocal decimal.Decimal
	DutyRate           decimal.Decimal
	DutyAmount         decimal.Decimal
	VATRate            decimal.Decimal
	VATAmount          decimal.Decimal
	TotalTax           decimal.Decimal
	RateSource         string
}

// DutyRate selects the duty rate for an HS code. IT goods (8471/8473) are
// duty exempt, vehicles (87) pay 5%, any other classified code pays the
// general 3%, and unclassifiable codes fall back to zero.
func DutyRate(hsCode string) decimal.Decimal {
	code := strings.TrimSpace(hsCode)
	switch {
	case strings.HasPrefix(code, "8471"), strings.HasPrefix(code, "8473"):
		return dutyRateExempt
	case strings.HasPrefix(code, "87"):
		return dutyRateVehicles
	case len(code) >= 4:
		return dutyRateGeneral
	default:
		return dutyRateExempt
	}
}

// Compute runs the duty/VAT chain for one line:
// dutiable = declared × rate, duty = dutiable × duty_rate,
// vat = (dutiable + duty) × 12%, total = duty + vat.
func Compute(in Input) (*Result, error) {
	if in.DeclaredValue.IsNegative() {
		return nil, fmt.Errorf("tax.Compute: negative declared value %s", in.DeclaredValue)
	}
	if in.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("tax.Compute: non-positive exchange rate %s", in.ExchangeRate)
	}

	dutiable := in.DeclaredValue.Mul(in.ExchangeRate).Round(2)
	dutyRate := DutyRate(in.HSCode)
	duty := dutiable.Mul(dutyRate).Round(2)
	vatBase := dutiable.Add(duty)
	vat := vatBase.Mul(VATRate).Round(2)
	total := duty.Add(vat)

	return &Result{
		LineNo:             in.LineNo,
		Description:        in.Description,
		HSCode:             in.HSCode,
		Currency:           in.Currency,
		DeclaredValue:      in.DeclaredValue,
		ExchangeRate:       in.ExchangeRate,
		DeclaredValueLocal: dutiable,
		DutyRate:           dutyRate,
		DutyAmount:         duty,
		VATRate:            VATRate,
		VATAmount:          vat,
		TotalTax:           total,
		RateSource:         in.RateSource,
	}, nil
}
