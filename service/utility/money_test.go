package utility

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		units  int64
		nanos  int32
	}{
		{name: "whole", amount: decimal.NewFromInt(190), units: 190},
		{name: "fraction", amount: decimal.RequireFromString("10.5"), units: 10, nanos: 500000000},
		{name: "clamped", amount: MaxDecimalValue.Add(decimal.NewFromInt(10)), units: math.MaxInt64, nanos: 999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ToMoney(Currency, tt.amount)
			assert.Equal(t, "KES", m.GetCurrencyCode())
			assert.Equal(t, tt.units, m.GetUnits())
			assert.Equal(t, tt.nanos, m.GetNanos())
		})
	}
}

func TestAmountFromText(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		want  string
	}{
		{input: "190.00", valid: true, want: "190"},
		{input: " 5 ", valid: true, want: "5"},
		{input: "", valid: false},
		{input: "{Amount={BasicAmount=6186.83}}", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := AmountFromText(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got.Decimal))
			}
		})
	}
}

func TestAmountFromFloat(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.5").Equal(AmountFromFloat(10.5).Decimal))
	assert.False(t, AmountFromFloat(math.NaN()).Valid)
	assert.True(t, AmountFromUnits(42).Decimal.Equal(decimal.NewFromInt(42)))
}
