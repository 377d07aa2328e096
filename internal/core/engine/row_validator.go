package engine

import (
	"encoding/hex"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// RowValidator checks voucher lines against account capabilities.
type RowValidator struct {
	resolver *CapabilityResolver
}

// NewRowValidator creates a validator backed by resolver.
func NewRowValidator(resolver *CapabilityResolver) *RowValidator {
	return &RowValidator{resolver: resolver}
}

// ValidateRow checks lines[idx]. Rules run in a fixed order and the first
// failure is returned as a *apperrors.RowError carrying the 1-based row.
func (v *RowValidator) ValidateRow(lines []domain.LineItem, idx int) error {
	line := lines[idx]
	row := idx + 1

	if strings.TrimSpace(line.AccountID) == "" || strings.TrimSpace(line.Description) == "" {
		return apperrors.NewRowError(apperrors.ErrMissingRequiredField, row)
	}

	caps, err := v.resolver.Resolve(line.AccountID)
	if err != nil {
		return apperrors.NewRowError(err, row)
	}

	if caps.TrackingMandatory && (strings.TrimSpace(line.TrackingNumber) == "" || line.TrackingDate == nil) {
		return apperrors.NewRowError(apperrors.ErrTrackingRequired, row)
	}

	if caps.QuantityMandatory && (line.Quantity == nil || !line.Quantity.IsPositive()) {
		return apperrors.NewRowError(apperrors.ErrQuantityRequired, row)
	}

	if caps.CurrencyMandatory {
		for _, a := range line.Aux {
			if !a.Rate.IsPositive() {
				return apperrors.NewRowError(apperrors.ErrCurrencyRequired, row)
			}
		}
	}

	for _, dt := range caps.RequiredDetailTypes {
		if line.Details[dt.Code] == "" {
			return &apperrors.RowError{Err: apperrors.ErrDetailRequired, Row: row, DetailType: dt.Name}
		}
	}

	sig := RowSignature(line)
	for j := 0; j < idx; j++ {
		if RowSignature(lines[j]) == sig {
			return apperrors.NewRowError(apperrors.ErrDuplicateRow, row)
		}
	}
	return nil
}

// FirstError validates every row and stops at the first failure.
func (v *RowValidator) FirstError(lines []domain.LineItem) error {
	for i := range lines {
		if err := v.ValidateRow(lines, i); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll returns the first failure of each row, in row order.
func (v *RowValidator) ValidateAll(lines []domain.LineItem) []error {
	var errs []error
	for i := range lines {
		if err := v.ValidateRow(lines, i); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// RowSignature is a digest of every field that makes two rows identical.
// Two rows collide only when all of them match exactly.
func RowSignature(line domain.LineItem) string {
	var b strings.Builder
	write := func(s string) {
		b.WriteString(s)
		b.WriteByte(0x1f)
	}
	write(line.AccountID)
	write(line.Debit.String())
	write(line.Credit.String())
	write(line.CurrencyCode)
	write(line.Description)

	keys := make([]string, 0, len(line.Details))
	for k := range line.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		write(k + "=" + line.Details[k])
	}

	write(line.TrackingNumber)
	if line.TrackingDate != nil {
		write(domain.DateOnly(*line.TrackingDate).Format("2006-01-02"))
	} else {
		write("")
	}
	if line.Quantity != nil {
		write(line.Quantity.String())
	} else {
		write("")
	}
	for _, a := range line.Aux {
		write(a.Rate.String())
	}

	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
