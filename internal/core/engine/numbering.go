package engine

import (
	"strconv"
	"strings"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// NumberSource says where a voucher number comes from.
type NumberSource int

const (
	// SourceManual means the user types the number and it is stored verbatim.
	SourceManual NumberSource = iota
	// SourceCounter draws the next value of a ledger counter.
	SourceCounter
	// SourceCrossReference reuses the cross-reference number.
	SourceCrossReference
)

// NumberPlan is the outcome of the ledger numbering policy for one voucher.
type NumberPlan struct {
	Source NumberSource
	Key    domain.CounterKey // set for SourceCounter only
}

// PlanVoucherNumber applies the ledger numbering policy to a voucher header.
//
// ledger scope counts per fiscal year when ResetYear is set and globally
// otherwise. branch scope adds the branch dimension, nested under the fiscal
// year when ResetYear is set. company and unknown scopes fall back to the
// cross-reference number.
func PlanVoucherNumber(cfg domain.NumberingConfig, fiscalYearID, branchID string) NumberPlan {
	switch cfg.Scope {
	case domain.ScopeNone:
		return NumberPlan{Source: SourceManual}
	case domain.ScopeLedger:
		var key domain.CounterKey
		if cfg.ResetYear {
			key.FiscalYearID = fiscalYearID
		}
		return NumberPlan{Source: SourceCounter, Key: key}
	case domain.ScopeBranch:
		key := domain.CounterKey{BranchID: branchID}
		if cfg.ResetYear {
			key.FiscalYearID = fiscalYearID
		}
		return NumberPlan{Source: SourceCounter, Key: key}
	}
	return NumberPlan{Source: SourceCrossReference}
}

// PreviewVoucherNumber returns the number a voucher would get if it were saved
// now, without issuing anything. Manual numbers are returned untouched.
func PreviewVoucherNumber(cfg domain.NumberingConfig, v *domain.Voucher) string {
	plan := PlanVoucherNumber(cfg, v.FiscalYearID, v.BranchID)
	switch plan.Source {
	case SourceManual:
		return v.VoucherNumber
	case SourceCounter:
		return FormatVoucherNumber(cfg.LastIssued(plan.Key) + 1)
	}
	return FormatVoucherNumber(v.CrossReference)
}

// CheckManualNumber rejects an empty number under manual numbering.
func CheckManualNumber(cfg domain.NumberingConfig, number string) error {
	if cfg.Scope == domain.ScopeNone && strings.TrimSpace(number) == "" {
		return apperrors.ErrManualNumberRequired
	}
	return nil
}

// FormatVoucherNumber renders an issued counter value.
func FormatVoucherNumber(n int64) string {
	if n <= 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}
