package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherStatus is the lifecycle state of a voucher.
type VoucherStatus string

const (
	StatusDraft     VoucherStatus = "draft"
	StatusTemporary VoucherStatus = "temporary"
	StatusReviewed  VoucherStatus = "reviewed"
	StatusFinal     VoucherStatus = "final"
)

// Rank orders statuses along the lifecycle; unknown statuses rank -1.
func (s VoucherStatus) Rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusTemporary:
		return 1
	case StatusReviewed:
		return 2
	case StatusFinal:
		return 3
	}
	return -1
}

// Valid reports whether s is a known status.
func (s VoucherStatus) Valid() bool { return s.Rank() >= 0 }

// RequiresBalance reports whether saving with this status needs debit == credit.
func (s VoucherStatus) RequiresBalance() bool { return s.Rank() >= StatusTemporary.Rank() }

// ReadOnly reports whether header and lines are frozen.
func (s VoucherStatus) ReadOnly() bool { return s == StatusReviewed || s == StatusFinal }

// CanTransition reports whether a voucher may move from s to next.
func (s VoucherStatus) CanTransition(next VoucherStatus) bool {
	switch s {
	case "", StatusDraft:
		return next == StatusDraft || next == StatusTemporary
	case StatusTemporary:
		return next == StatusDraft || next == StatusTemporary || next == StatusReviewed
	case StatusReviewed:
		return next == StatusTemporary || next == StatusFinal
	}
	return false
}

// Saveable reports whether a plain save may target s. Later statuses are
// reached only through review and finalization.
func (s VoucherStatus) Saveable() bool { return s == StatusDraft || s == StatusTemporary }

// Voucher is the journal voucher being composed or already persisted.
type Voucher struct {
	VoucherID        string        `json:"voucherID"` // empty until first save
	FiscalYearID     string        `json:"fiscalYearID"`
	LedgerID         string        `json:"ledgerID"`
	BranchID         string        `json:"branchID"`
	VoucherNumber    string        `json:"voucherNumber"`
	DailyNumber      int64         `json:"dailyNumber"`
	CrossReference   int64         `json:"crossReference"`
	SubsidiaryNumber string        `json:"subsidiaryNumber"`
	VoucherDate      time.Time     `json:"voucherDate"`
	DocumentTypeCode string        `json:"documentTypeCode"`
	Description      string        `json:"description"`
	Status           VoucherStatus `json:"status"`
	ReviewedBy       string        `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time    `json:"reviewedAt,omitempty"`
	ApprovedBy       string        `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time    `json:"approvedAt,omitempty"`
	ImportGroupID    string        `json:"importGroupID,omitempty"`
	AuditFields
	Lines []LineItem `json:"lines"`
}

// IsNew reports whether the voucher has never been persisted.
func (v *Voucher) IsNew() bool { return v.VoucherID == "" }

// Renumber restores dense 1-based row numbers.
func (v *Voucher) Renumber() {
	for i := range v.Lines {
		v.Lines[i].RowNumber = i + 1
	}
}

// AuxAmount is one auxiliary-currency view of a line.
type AuxAmount struct {
	Rate    decimal.Decimal `json:"rate"`
	Reverse bool            `json:"reverse"` // divide by Rate instead of multiplying
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// LineItem is one debit or credit row of a voucher.
type LineItem struct {
	LineID         string                  `json:"lineID"`
	RowNumber      int                     `json:"rowNumber"`
	AccountID      string                  `json:"accountID"`
	Debit          decimal.Decimal         `json:"debit"`
	Credit         decimal.Decimal         `json:"credit"`
	CurrencyCode   string                  `json:"currencyCode"`
	Description    string                  `json:"description"`
	Aux            [AuxSlotCount]AuxAmount `json:"aux"`
	TrackingNumber string                  `json:"trackingNumber,omitempty"`
	TrackingDate   *time.Time              `json:"trackingDate,omitempty"`
	Quantity       *decimal.Decimal        `json:"quantity,omitempty"`
	Details        map[string]string       `json:"details,omitempty"` // detail-type code -> instance id
}

const tempLinePrefix = "tmp-"

// NewTempLineID returns a synthetic id for a line that has not been saved.
func NewTempLineID() string { return tempLinePrefix + uuid.NewString() }

// IsTemporary reports whether the line only exists in memory.
func (l *LineItem) IsTemporary() bool {
	return l.LineID == "" || strings.HasPrefix(l.LineID, tempLinePrefix)
}

// SetDebit sets the debit amount and clears the credit.
func (l *LineItem) SetDebit(amount decimal.Decimal) {
	l.Debit = amount
	if !amount.IsZero() {
		l.Credit = decimal.Zero
	}
}

// SetCredit sets the credit amount and clears the debit.
func (l *LineItem) SetCredit(amount decimal.Decimal) {
	l.Credit = amount
	if !amount.IsZero() {
		l.Debit = decimal.Zero
	}
}

// HasAmount reports whether either side carries a nonzero value.
func (l *LineItem) HasAmount() bool {
	return !l.Debit.IsZero() || !l.Credit.IsZero()
}

// IsBlank reports whether nothing has been entered on the line.
func (l *LineItem) IsBlank() bool {
	return l.AccountID == "" && l.Description == "" && !l.HasAmount()
}

// Clone returns a deep copy of the line.
func (l LineItem) Clone() LineItem {
	out := l
	if l.TrackingDate != nil {
		d := *l.TrackingDate
		out.TrackingDate = &d
	}
	if l.Quantity != nil {
		q := *l.Quantity
		out.Quantity = &q
	}
	if l.Details != nil {
		out.Details = make(map[string]string, len(l.Details))
		for k, v := range l.Details {
			out.Details[k] = v
		}
	}
	return out
}
