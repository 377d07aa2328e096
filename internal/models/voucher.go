package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is a row of the vouchers table.
type Voucher struct {
	VoucherID        string         `json:"voucherID"` // Primary Key (UUID)
	FiscalYearID     string         `json:"fiscalYearID"`
	LedgerID         string         `json:"ledgerID"`
	BranchID         string         `json:"branchID"`
	VoucherNumber    string         `json:"voucherNumber"`
	DailyNumber      int64          `json:"dailyNumber"`    // unique per voucher_date
	CrossReference   int64          `json:"crossReference"` // unique per ledger and fiscal year
	SubsidiaryNumber sql.NullString `json:"subsidiaryNumber"`
	VoucherDate      time.Time      `json:"voucherDate"`
	DocumentTypeCode sql.NullString `json:"documentTypeCode"`
	Description      string         `json:"description"`
	Status           string         `json:"status"`
	ReviewedBy       sql.NullString `json:"reviewedBy"`
	ReviewedAt       sql.NullTime   `json:"reviewedAt"`
	ApprovedBy       sql.NullString `json:"approvedBy"`
	ApprovedAt       sql.NullTime   `json:"approvedAt"`
	ImportGroupID    sql.NullString `json:"importGroupID"`
	AuditFields
}

// AuxAmount is one element of the voucher_lines.aux jsonb array.
type AuxAmount struct {
	Rate    decimal.Decimal `json:"rate"`
	Reverse bool            `json:"reverse"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// VoucherLine is a row of the voucher_lines table.
type VoucherLine struct {
	LineID         string              `json:"lineID"` // Primary Key (UUID)
	VoucherID      string              `json:"voucherID"`
	RowNumber      int                 `json:"rowNumber"`
	AccountID      string              `json:"accountID"`
	Debit          decimal.Decimal     `json:"debit"`
	Credit         decimal.Decimal     `json:"credit"`
	CurrencyCode   string              `json:"currencyCode"`
	Description    string              `json:"description"`
	Aux            []AuxAmount         `json:"aux"`
	TrackingNumber sql.NullString      `json:"trackingNumber"`
	TrackingDate   sql.NullTime        `json:"trackingDate"`
	Quantity       decimal.NullDecimal `json:"quantity"`
	Details        map[string]string   `json:"details"`
}
