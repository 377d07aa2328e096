package engine

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// Pair is a debit/credit total.
type Pair struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// Diff returns Debit - Credit.
func (p Pair) Diff() decimal.Decimal { return p.Debit.Sub(p.Credit) }

// Totals aggregates a voucher in the base currency and in every auxiliary slot.
type Totals struct {
	Base Pair                      `json:"base"`
	Aux  [domain.AuxSlotCount]Pair `json:"aux"`
}

// ComputeTotals sums the lines.
func ComputeTotals(lines []domain.LineItem) Totals {
	var t Totals
	for _, l := range lines {
		t.Base.Debit = t.Base.Debit.Add(l.Debit)
		t.Base.Credit = t.Base.Credit.Add(l.Credit)
		for i, a := range l.Aux {
			t.Aux[i].Debit = t.Aux[i].Debit.Add(a.Debit)
			t.Aux[i].Credit = t.Aux[i].Credit.Add(a.Credit)
		}
	}
	return t
}

// IsBalanced reports exact equality of base debit and credit.
func (t Totals) IsBalanced() bool { return t.Base.Debit.Equal(t.Base.Credit) }

// IsZero reports whether nothing was entered on either side.
func (t Totals) IsZero() bool { return t.Base.Debit.IsZero() && t.Base.Credit.IsZero() }

// CheckStatusGate applies the zero-total guard and, for temporary and later
// statuses, the balance requirement.
func CheckStatusGate(t Totals, status domain.VoucherStatus) error {
	if t.IsZero() {
		return apperrors.ErrZeroAmount
	}
	if status.RequiresBalance() && !t.IsBalanced() {
		return apperrors.ErrUnbalanced
	}
	return nil
}

// AutoBalance puts the base difference on the first line without an amount, or
// on a new line when every line already carries one. The returned bool is false
// when the lines were already balanced and nothing changed.
func AutoBalance(lines []domain.LineItem, aux domain.AuxiliaryCurrencies) ([]domain.LineItem, bool) {
	diff := ComputeTotals(lines).Base.Diff()
	if diff.IsZero() {
		return lines, false
	}

	target := -1
	for i := range lines {
		if !lines[i].HasAmount() {
			target = i
			break
		}
	}
	if target < 0 {
		lines = append(lines, balancingLine(lines))
		target = len(lines) - 1
		lines[target].RowNumber = len(lines)
	}

	line := &lines[target]
	if diff.IsPositive() {
		line.SetCredit(diff)
	} else {
		line.SetDebit(diff.Neg())
	}
	PinAuxiliaryRates(line, aux)
	return lines, true
}

// balancingLine seeds an appended line with the currency and rates of the last
// line that has an amount.
func balancingLine(lines []domain.LineItem) domain.LineItem {
	nl := domain.LineItem{LineID: domain.NewTempLineID()}
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].HasAmount() {
			nl.CurrencyCode = lines[i].CurrencyCode
			for s := range nl.Aux {
				nl.Aux[s].Rate = lines[i].Aux[s].Rate
				nl.Aux[s].Reverse = lines[i].Aux[s].Reverse
			}
			break
		}
	}
	return nl
}
