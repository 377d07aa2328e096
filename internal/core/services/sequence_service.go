package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
)

// sequenceService derives daily, cross-reference and voucher numbers.
// Previews read committed data only; issuing happens inside the save
// transaction while the caller holds the number locks.
type sequenceService struct {
	BaseService
	vouchers portsrepo.VoucherReader
}

// NewSequenceService creates a new SequenceAllocatorSvc.
func NewSequenceService(vouchers portsrepo.VoucherReader) portssvc.SequenceAllocatorSvc {
	return &sequenceService{vouchers: vouchers}
}

var _ portssvc.SequenceAllocatorSvc = (*sequenceService)(nil)

func (s *sequenceService) NextDailyNumber(ctx context.Context, date time.Time) (int64, error) {
	return nextDaily(ctx, s.vouchers, date)
}

func (s *sequenceService) NextCrossReference(ctx context.Context, ledgerID, fiscalYearID string) (int64, error) {
	return nextCrossReference(ctx, s.vouchers, ledgerID, fiscalYearID)
}

func (s *sequenceService) PreviewVoucherNumber(ctx context.Context, ledger domain.Ledger, voucher domain.Voucher) (string, error) {
	plan := engine.PlanVoucherNumber(ledger.Numbering, voucher.FiscalYearID, voucher.BranchID)
	if plan.Source == engine.SourceCrossReference && voucher.CrossReference == 0 {
		next, err := s.NextCrossReference(ctx, voucher.LedgerID, voucher.FiscalYearID)
		if err != nil {
			return "", err
		}
		voucher.CrossReference = next
	}
	return engine.PreviewVoucherNumber(ledger.Numbering, &voucher), nil
}

func (s *sequenceService) AllocateInTx(ctx context.Context, tx portsrepo.VoucherTx, ledger domain.Ledger, voucher *domain.Voucher) error {
	ctx, span := tracer.Start(ctx, "SequenceAllocator.AllocateInTx")
	defer span.End()
	span.SetAttributes(
		attribute.String("ledger.id", ledger.LedgerID),
		attribute.String("numbering.scope", string(ledger.Numbering.Scope)),
	)

	daily, err := nextDaily(ctx, tx, voucher.VoucherDate)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	crossRef, err := nextCrossReference(ctx, tx, voucher.LedgerID, voucher.FiscalYearID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	voucher.DailyNumber = daily
	voucher.CrossReference = crossRef

	if err := s.issueNumber(ctx, tx, ledger, voucher); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("voucher.number", voucher.VoucherNumber))
	s.LogDebug(ctx, "Allocated voucher numbers",
		slog.String("ledger_id", ledger.LedgerID),
		slog.Int64("daily_number", daily),
		slog.Int64("cross_reference", crossRef),
		slog.String("voucher_number", voucher.VoucherNumber))
	return nil
}

func (s *sequenceService) ReissueInTx(ctx context.Context, tx portsrepo.VoucherTx, ledger domain.Ledger, voucher *domain.Voucher) error {
	ctx, span := tracer.Start(ctx, "SequenceAllocator.ReissueInTx")
	defer span.End()
	span.SetAttributes(
		attribute.String("voucher.id", voucher.VoucherID),
		attribute.String("numbering.scope", string(ledger.Numbering.Scope)),
	)

	previous := voucher.VoucherNumber
	if err := s.issueNumber(ctx, tx, ledger, voucher); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.LogInfo(ctx, "Reissued voucher number",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("previous_number", previous),
		slog.String("voucher_number", voucher.VoucherNumber))
	return nil
}

// issueNumber sets voucher.VoucherNumber from the ledger policy. Counters are
// incremented through tx; the cross-reference must already be set.
func (s *sequenceService) issueNumber(ctx context.Context, tx portsrepo.VoucherTx, ledger domain.Ledger, voucher *domain.Voucher) error {
	plan := engine.PlanVoucherNumber(ledger.Numbering, voucher.FiscalYearID, voucher.BranchID)
	switch plan.Source {
	case engine.SourceManual:
		if err := engine.CheckManualNumber(ledger.Numbering, voucher.VoucherNumber); err != nil {
			return err
		}
		voucher.VoucherNumber = strings.TrimSpace(voucher.VoucherNumber)
	case engine.SourceCounter:
		issued, err := tx.IncrementCounter(ctx, ledger.LedgerID, plan.Key)
		if err != nil {
			s.LogError(ctx, err, "Failed to issue voucher number",
				slog.String("ledger_id", ledger.LedgerID),
				slog.String("counter_key", plan.Key.String()))
			return fmt.Errorf("failed to issue voucher number: %w", err)
		}
		voucher.VoucherNumber = engine.FormatVoucherNumber(issued)
	default:
		voucher.VoucherNumber = engine.FormatVoucherNumber(voucher.CrossReference)
	}
	return nil
}

func (s *sequenceService) RefreshDailyInTx(ctx context.Context, tx portsrepo.VoucherTx, voucher *domain.Voucher) error {
	daily, err := nextDaily(ctx, tx, voucher.VoucherDate)
	if err != nil {
		return err
	}
	voucher.DailyNumber = daily
	return nil
}

func (s *sequenceService) RefreshCrossReferenceInTx(ctx context.Context, tx portsrepo.VoucherTx, voucher *domain.Voucher) error {
	crossRef, err := nextCrossReference(ctx, tx, voucher.LedgerID, voucher.FiscalYearID)
	if err != nil {
		return err
	}
	voucher.CrossReference = crossRef
	return nil
}

func nextDaily(ctx context.Context, r portsrepo.VoucherReader, date time.Time) (int64, error) {
	last, err := r.MaxDailyNumber(ctx, domain.DateOnly(date))
	if err != nil {
		return 0, fmt.Errorf("failed to read daily numbers: %w", err)
	}
	return last + 1, nil
}

func nextCrossReference(ctx context.Context, r portsrepo.VoucherReader, ledgerID, fiscalYearID string) (int64, error) {
	last, err := r.MaxCrossReference(ctx, ledgerID, fiscalYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to read cross references: %w", err)
	}
	return last + 1, nil
}

// numberLockKeys lists the locks a save must hold, always in the same order.
func numberLockKeys(v domain.Voucher, crossRef, daily bool) []string {
	var keys []string
	if crossRef || daily {
		keys = append(keys, "voucher:daily:"+domain.DateOnly(v.VoucherDate).Format(time.DateOnly))
	}
	if crossRef {
		keys = append(keys, fmt.Sprintf("voucher:xref:%s:%s", v.LedgerID, v.FiscalYearID))
	}
	return keys
}

// withLocks runs fn holding every key in order.
func withLocks(ctx context.Context, locker portssvc.Locker, keys []string, ttl time.Duration, fn func(ctx context.Context) error) error {
	if len(keys) == 0 {
		return fn(ctx)
	}
	return locker.WithLock(ctx, keys[0], ttl, func(ctx context.Context) error {
		return withLocks(ctx, locker, keys[1:], ttl, fn)
	})
}
