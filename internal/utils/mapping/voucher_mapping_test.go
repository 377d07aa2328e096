package mapping_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/models"
	"github.com/SscSPs/voucher_engine/internal/utils/mapping"
)

func TestToModelVoucher_OptionalColumns(t *testing.T) {
	m := mapping.ToModelVoucher(domain.Voucher{VoucherID: "V1", Status: domain.StatusDraft})

	assert.False(t, m.SubsidiaryNumber.Valid)
	assert.False(t, m.DocumentTypeCode.Valid)
	assert.False(t, m.ReviewedAt.Valid)
	assert.Equal(t, "draft", m.Status)

	at := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	m = mapping.ToModelVoucher(domain.Voucher{SubsidiaryNumber: "S-1", ReviewedBy: "u", ReviewedAt: &at})
	assert.Equal(t, "S-1", m.SubsidiaryNumber.String)
	assert.True(t, m.ReviewedAt.Valid)
	assert.Equal(t, at, m.ReviewedAt.Time)
}

func TestVoucherLine_KeepsOptionalFields(t *testing.T) {
	qty := decimal.NewFromInt(3)
	tracked := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	line := domain.LineItem{
		LineID:         "line-1",
		RowNumber:      2,
		AccountID:      "A",
		Debit:          decimal.NewFromInt(90),
		CurrencyCode:   "USD",
		TrackingNumber: "T-7",
		TrackingDate:   &tracked,
		Quantity:       &qty,
		Details:        map[string]string{"CC": "cc-1"},
	}
	line.Aux[domain.AuxOperational] = domain.AuxAmount{Rate: decimal.NewFromInt(1), Debit: decimal.NewFromInt(90)}

	m := mapping.ToModelVoucherLine("V1", line)
	require.Len(t, m.Aux, domain.AuxSlotCount)
	assert.Equal(t, "V1", m.VoucherID)
	assert.True(t, m.Quantity.Valid)

	back := mapping.ToDomainLineItem(m)
	assert.Equal(t, line.LineID, back.LineID)
	assert.Equal(t, 2, back.RowNumber)
	assert.True(t, back.Quantity.Equal(qty))
	assert.Equal(t, tracked, *back.TrackingDate)
	assert.Equal(t, "cc-1", back.Details["CC"])
	assert.True(t, back.Aux[domain.AuxOperational].Debit.Equal(decimal.NewFromInt(90)))
}

func TestVoucherLine_EmptyOptionalFields(t *testing.T) {
	back := mapping.ToDomainLineItem(models.VoucherLine{LineID: "l", Details: map[string]string{}})

	assert.Nil(t, back.Quantity)
	assert.Nil(t, back.TrackingDate)
	assert.Nil(t, back.Details)
}

func TestToDomainLedger_Counters(t *testing.T) {
	l := mapping.ToDomainLedger(
		models.Ledger{LedgerID: "L1", NumberingScope: "branch", NumberingResetYear: true},
		[]models.LedgerCounter{{LedgerID: "L1", FiscalYearID: "F", BranchID: "X", LastIssued: 7}},
	)

	assert.Equal(t, domain.ScopeBranch, l.Numbering.Scope)
	assert.Equal(t, int64(7), l.Numbering.LastIssued(domain.CounterKey{FiscalYearID: "F", BranchID: "X"}))
}
