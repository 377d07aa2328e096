package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/models"
)

// ToModelVoucher converts a domain Voucher header to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:        d.VoucherID,
		FiscalYearID:     d.FiscalYearID,
		LedgerID:         d.LedgerID,
		BranchID:         d.BranchID,
		VoucherNumber:    d.VoucherNumber,
		DailyNumber:      d.DailyNumber,
		CrossReference:   d.CrossReference,
		SubsidiaryNumber: nullString(d.SubsidiaryNumber),
		VoucherDate:      domain.DateOnly(d.VoucherDate),
		DocumentTypeCode: nullString(d.DocumentTypeCode),
		Description:      d.Description,
		Status:           string(d.Status),
		ReviewedBy:       nullString(d.ReviewedBy),
		ReviewedAt:       nullTime(d.ReviewedAt),
		ApprovedBy:       nullString(d.ApprovedBy),
		ApprovedAt:       nullTime(d.ApprovedAt),
		ImportGroupID:    nullString(d.ImportGroupID),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher and its lines to a domain Voucher
func ToDomainVoucher(m models.Voucher, lines []models.VoucherLine) domain.Voucher {
	v := domain.Voucher{
		VoucherID:        m.VoucherID,
		FiscalYearID:     m.FiscalYearID,
		LedgerID:         m.LedgerID,
		BranchID:         m.BranchID,
		VoucherNumber:    m.VoucherNumber,
		DailyNumber:      m.DailyNumber,
		CrossReference:   m.CrossReference,
		SubsidiaryNumber: m.SubsidiaryNumber.String,
		VoucherDate:      domain.DateOnly(m.VoucherDate),
		DocumentTypeCode: m.DocumentTypeCode.String,
		Description:      m.Description,
		Status:           domain.VoucherStatus(m.Status),
		ReviewedBy:       m.ReviewedBy.String,
		ReviewedAt:       timePtr(m.ReviewedAt),
		ApprovedBy:       m.ApprovedBy.String,
		ApprovedAt:       timePtr(m.ApprovedAt),
		ImportGroupID:    m.ImportGroupID.String,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	v.Lines = make([]domain.LineItem, 0, len(lines))
	for _, l := range lines {
		v.Lines = append(v.Lines, ToDomainLineItem(l))
	}
	return v
}

// ToModelVoucherLine converts a domain LineItem to a model VoucherLine
func ToModelVoucherLine(voucherID string, d domain.LineItem) models.VoucherLine {
	m := models.VoucherLine{
		LineID:         d.LineID,
		VoucherID:      voucherID,
		RowNumber:      d.RowNumber,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		CurrencyCode:   d.CurrencyCode,
		Description:    d.Description,
		Aux:            make([]models.AuxAmount, len(d.Aux)),
		TrackingNumber: nullString(d.TrackingNumber),
		TrackingDate:   nullTime(d.TrackingDate),
		Details:        d.Details,
	}
	for i, a := range d.Aux {
		m.Aux[i] = models.AuxAmount{Rate: a.Rate, Reverse: a.Reverse, Debit: a.Debit, Credit: a.Credit}
	}
	if d.Quantity != nil {
		m.Quantity = decimal.NullDecimal{Decimal: *d.Quantity, Valid: true}
	}
	if m.Details == nil {
		m.Details = map[string]string{}
	}
	return m
}

// ToDomainLineItem converts a model VoucherLine to a domain LineItem
func ToDomainLineItem(m models.VoucherLine) domain.LineItem {
	l := domain.LineItem{
		LineID:         m.LineID,
		RowNumber:      m.RowNumber,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		CurrencyCode:   m.CurrencyCode,
		Description:    m.Description,
		TrackingNumber: m.TrackingNumber.String,
		TrackingDate:   timePtr(m.TrackingDate),
	}
	for i := 0; i < len(m.Aux) && i < domain.AuxSlotCount; i++ {
		a := m.Aux[i]
		l.Aux[i] = domain.AuxAmount{Rate: a.Rate, Reverse: a.Reverse, Debit: a.Debit, Credit: a.Credit}
	}
	if m.Quantity.Valid {
		q := m.Quantity.Decimal
		l.Quantity = &q
	}
	if len(m.Details) > 0 {
		l.Details = m.Details
	}
	return l
}
