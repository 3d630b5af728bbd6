package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LengthUnit is a unit for recorded cable lengths.
type LengthUnit string

const (
	UnitKilometer  LengthUnit = "km"
	UnitMeter      LengthUnit = "m"
	UnitCentimeter LengthUnit = "cm"
	UnitMile       LengthUnit = "mi"
	UnitFoot       LengthUnit = "ft"
	UnitInch       LengthUnit = "in"
)

var metersPerUnit = map[LengthUnit]decimal.Decimal{
	UnitKilometer:  decimal.NewFromInt(1000),
	UnitMeter:      decimal.NewFromInt(1),
	UnitCentimeter: decimal.RequireFromString("0.01"),
	UnitMile:       decimal.RequireFromString("1609.344"),
	UnitFoot:       decimal.RequireFromString("0.3048"),
	UnitInch:       decimal.RequireFromString("0.0254"),
}

// ToMeters converts a length in the given unit to meters, so lengths
// recorded in mixed units can be ordered and summed.
func ToMeters(length decimal.Decimal, unit LengthUnit) (decimal.Decimal, error) {
	factor, ok := metersPerUnit[unit]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("unknown length unit %q", unit)
	}
	return length.Mul(factor), nil
}
