package services

import (
	"context"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
)

// DraftView is a voucher as seen while composing it.
type DraftView struct {
	Voucher    domain.Voucher
	Totals     engine.Totals
	Violations []error
}

// VoucherComposerSvc drives the composing flow up to and including save.
type VoucherComposerSvc interface {
	// NewDraft starts a voucher with one blank line dated today and previewed numbers.
	NewDraft(ctx context.Context, actor domain.Actor, ledgerID, branchID string) (*DraftView, error)

	// ApplyEdits replays edits on draft and re-derives numbers the edits made stale.
	ApplyEdits(ctx context.Context, actor domain.Actor, draft domain.Voucher, edits []engine.Edit) (*DraftView, error)

	// Save validates draft and persists it with target status in one transaction.
	Save(ctx context.Context, actor domain.Actor, draft domain.Voucher, target domain.VoucherStatus) (*domain.Voucher, error)

	// Copy starts a new draft seeded from an existing voucher.
	Copy(ctx context.Context, actor domain.Actor, voucherID string) (*DraftView, error)
}

// VoucherLifecycleSvc moves saved vouchers along the status lifecycle.
type VoucherLifecycleSvc interface {
	Review(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error)
	Finalize(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error)
	RevertToTemporary(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error)
}

// VoucherReaderSvc defines read operations for vouchers.
type VoucherReaderSvc interface {
	Get(ctx context.Context, voucherID string) (*DraftView, error)
}

// VoucherSvcFacade combines all voucher service interfaces.
type VoucherSvcFacade interface {
	VoucherComposerSvc
	VoucherLifecycleSvc
	VoucherReaderSvc
}

// PeriodGateSvc evaluates the fiscal period rule against current period state.
type PeriodGateSvc interface {
	// Validate loads the periods of fiscalYearID fresh and checks date for userID.
	Validate(ctx context.Context, date time.Time, fiscalYearID, userID string) error

	// ValidateInTx is Validate against the periods visible to tx.
	ValidateInTx(ctx context.Context, tx portsrepo.PeriodReader, date time.Time, fiscalYearID, userID string) error
}

// SequenceAllocatorSvc derives and issues voucher sequence numbers.
type SequenceAllocatorSvc interface {
	NextDailyNumber(ctx context.Context, date time.Time) (int64, error)
	NextCrossReference(ctx context.Context, ledgerID, fiscalYearID string) (int64, error)

	// PreviewVoucherNumber returns the number the voucher would get now without issuing it.
	PreviewVoucherNumber(ctx context.Context, ledger domain.Ledger, voucher domain.Voucher) (string, error)

	// AllocateInTx assigns daily, cross-reference and voucher numbers to a
	// first-time save, issuing counters through tx.
	AllocateInTx(ctx context.Context, tx portsrepo.VoucherTx, ledger domain.Ledger, voucher *domain.Voucher) error

	// RefreshDailyInTx re-derives the daily number of an existing voucher whose date changed.
	RefreshDailyInTx(ctx context.Context, tx portsrepo.VoucherTx, voucher *domain.Voucher) error

	// RefreshCrossReferenceInTx re-derives the cross-reference of an existing
	// voucher moved to another ledger or fiscal year.
	RefreshCrossReferenceInTx(ctx context.Context, tx portsrepo.VoucherTx, voucher *domain.Voucher) error

	// ReissueInTx issues a new voucher number to an existing draft whose ledger,
	// branch or fiscal year changed. Manual numbers are kept.
	ReissueInTx(ctx context.Context, tx portsrepo.VoucherTx, ledger domain.Ledger, voucher *domain.Voucher) error
}
