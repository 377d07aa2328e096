package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// VoucherReader defines read operations for vouchers.
type VoucherReader interface {
	// FindVoucherByID returns the voucher with its lines ordered by row number.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// MaxDailyNumber returns the highest daily number used on date, or zero.
	MaxDailyNumber(ctx context.Context, date time.Time) (int64, error)

	// MaxCrossReference returns the highest cross-reference in a ledger and fiscal year, or zero.
	MaxCrossReference(ctx context.Context, ledgerID, fiscalYearID string) (int64, error)

	// SubsidiaryNumberExists reports whether another voucher of the fiscal year uses number.
	SubsidiaryNumberExists(ctx context.Context, fiscalYearID, number, excludeVoucherID string) (bool, error)
}

// VoucherWriter defines write operations for vouchers. Lines are never
// patched: every save replaces them wholesale.
type VoucherWriter interface {
	InsertVoucher(ctx context.Context, voucher domain.Voucher) error
	UpdateVoucher(ctx context.Context, voucher domain.Voucher) error
	ReplaceLines(ctx context.Context, voucherID string, lines []domain.LineItem) error

	// UpdateVoucherStatus records a lifecycle transition and its audit identities.
	UpdateVoucherStatus(ctx context.Context, voucher domain.Voucher) error
}

// VoucherRepositoryFacade combines voucher reads with the unit of work used for writes.
type VoucherRepositoryFacade interface {
	VoucherReader
	UnitOfWork
}
