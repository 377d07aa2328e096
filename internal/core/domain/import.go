package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow is one line of a bulk import file. Rows sharing GroupID form one voucher;
// header fields are read from the first row of the group.
type ImportRow struct {
	GroupID          string
	LedgerID         string
	BranchID         string
	FiscalYearID     string
	VoucherDate      time.Time
	VoucherNumber    string
	SubsidiaryNumber string
	DocumentTypeCode string
	HeaderText       string

	AccountID      string
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	CurrencyCode   string
	Rates          [AuxSlotCount]decimal.Decimal
	Reverse        [AuxSlotCount]bool
	TrackingNumber string
	TrackingDate   *time.Time
	Quantity       *decimal.Decimal
	Details        map[string]string
}

// ImportResult reports the outcome of one import group.
type ImportResult struct {
	GroupID       string `json:"groupID"`
	VoucherID     string `json:"voucherID,omitempty"`
	VoucherNumber string `json:"voucherNumber,omitempty"`
	Error         string `json:"error,omitempty"`
}
