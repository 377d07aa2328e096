// Package engine holds the voucher business rules: currency conversion,
// account capabilities, row validation, balancing, the fiscal period rule,
// numbering policy and the composing session. Nothing here touches storage.
package engine

import (
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Convert turns a base amount into an auxiliary currency amount.
// A zero amount or rate yields zero; reverse divides instead of multiplying.
func Convert(amount, rate decimal.Decimal, reverse bool) decimal.Decimal {
	if amount.IsZero() || rate.IsZero() {
		return decimal.Zero
	}
	if reverse {
		return amount.Div(rate)
	}
	return amount.Mul(rate)
}

// ConvertOptional is Convert for values that may be absent.
func ConvertOptional(amount, rate *decimal.Decimal, reverse bool) decimal.Decimal {
	if amount == nil || rate == nil {
		return decimal.Zero
	}
	return Convert(*amount, *rate, reverse)
}

// ParseAmount reads a user supplied amount; anything non-numeric is zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RecomputeAux derives all three auxiliary pairs of line from its base amounts.
func RecomputeAux(line *domain.LineItem) {
	for i := range line.Aux {
		a := &line.Aux[i]
		a.Debit = Convert(line.Debit, a.Rate, a.Reverse)
		a.Credit = Convert(line.Credit, a.Rate, a.Reverse)
	}
}

// PinAuxiliaryRates forces an identity conversion for the auxiliary slot whose
// currency is the line currency, then recomputes the pairs.
func PinAuxiliaryRates(line *domain.LineItem, aux domain.AuxiliaryCurrencies) {
	if slot, ok := aux.SlotFor(line.CurrencyCode); ok {
		line.Aux[slot].Rate = decimal.NewFromInt(1)
		line.Aux[slot].Reverse = false
	}
	RecomputeAux(line)
}
