package utility

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/genproto/googleapis/type/money"
)

const (
	NanoSize = 1000000000

	// Currency is the only currency the gateway settles in.
	Currency = "KES"
)

var MaxDecimalValue = decimal.NewFromInt(math.MaxInt64).Add(decimal.New(999999999, -9))

func ToMoney(currency string, amount decimal.Decimal) *money.Money {

	amount = CleanDecimal(amount)

	units := amount.IntPart()
	nanos := amount.Sub(decimal.NewFromInt(units)).Mul(decimal.NewFromInt(NanoSize)).IntPart()

	return &money.Money{CurrencyCode: currency, Units: units, Nanos: int32(nanos)}
}

// CleanDecimal rounds to nine places and clamps into the range a NUMERIC(28,9) column holds.
func CleanDecimal(d decimal.Decimal) decimal.Decimal {

	rounded, _ := decimal.NewFromString(d.StringFixed(9))

	minValue := MaxDecimalValue.Neg()

	if rounded.GreaterThan(MaxDecimalValue) {
		return MaxDecimalValue
	} else if rounded.LessThan(minValue) {
		return minValue
	}

	return rounded
}

// AmountFromFloat converts an extracted numeric amount for persistence.
func AmountFromFloat(f float64) decimal.NullDecimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(CleanDecimal(decimal.NewFromFloat(f)))
}

// AmountFromText parses amounts the gateway reports as text, such as "190.00".
// Unparseable text yields a null amount.
func AmountFromText(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(CleanDecimal(d))
}

func AmountFromUnits(units uint32) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(int64(units)))
}
