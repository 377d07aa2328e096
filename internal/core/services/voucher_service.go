package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
)

var tracer = otel.Tracer("github.com/SscSPs/voucher_engine/internal/core/services")

// maxAllocationAttempts bounds the retries after a concurrent save took the
// same daily or cross-reference number.
const maxAllocationAttempts = 3

const defaultLockTTL = 10 * time.Second

// voucherService composes, saves and moves vouchers through their lifecycle.
type voucherService struct {
	BaseService
	vouchers portsrepo.VoucherRepositoryFacade
	ledgers  portsrepo.LedgerRepositoryFacade
	accounts portsrepo.AccountRepositoryFacade
	fiscal   portsrepo.FiscalRepositoryFacade
	settings portsrepo.SettingsRepositoryFacade
	periods  portssvc.PeriodGateSvc
	numbers  portssvc.SequenceAllocatorSvc
	locker   portssvc.Locker
	lockTTL  time.Duration
	now      func() time.Time
}

// VoucherServiceOption configures optional voucher service collaborators.
type VoucherServiceOption func(*voucherService)

// WithLocker sets the lock used around number allocation.
func WithLocker(locker portssvc.Locker) VoucherServiceOption {
	return func(s *voucherService) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// WithLockTTL sets how long number locks are held at most.
func WithLockTTL(ttl time.Duration) VoucherServiceOption {
	return func(s *voucherService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) VoucherServiceOption {
	return func(s *voucherService) { s.now = now }
}

// NewVoucherService creates a new VoucherSvcFacade.
func NewVoucherService(repos portsrepo.RepositoryProvider, periods portssvc.PeriodGateSvc, numbers portssvc.SequenceAllocatorSvc, opts ...VoucherServiceOption) portssvc.VoucherSvcFacade {
	s := &voucherService{
		vouchers: repos.VoucherRepo,
		ledgers:  repos.LedgerRepo,
		accounts: repos.AccountRepo,
		fiscal:   repos.FiscalRepo,
		settings: repos.SettingsRepo,
		periods:  periods,
		numbers:  numbers,
		locker:   processLocker{},
		lockTTL:  defaultLockTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// composeContext is everything a session needs about its ledger.
type composeContext struct {
	ledger   domain.Ledger
	resolver *engine.CapabilityResolver
	aux      domain.AuxiliaryCurrencies
}

// loadContext reads the ledger and then its chart, detail types and auxiliary
// currencies concurrently.
func (s *voucherService) loadContext(ctx context.Context, ledgerID string) (*composeContext, error) {
	ledger, err := s.ledgers.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("ledger %s: %w", ledgerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	var (
		accounts    []domain.Account
		detailTypes []domain.DetailType
		aux         domain.AuxiliaryCurrencies
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.accounts.ListAccountsByStructure(gctx, ledger.StructureID)
		return err
	})
	g.Go(func() error {
		var err error
		detailTypes, err = s.accounts.ListDetailTypes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		aux, err = s.settings.AuxiliaryCurrencies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load voucher lookups", slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to load voucher lookups: %w", err)
	}

	chart := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		chart[a.AccountID] = a
	}
	return &composeContext{
		ledger:   *ledger,
		resolver: engine.NewCapabilityResolver(chart, detailTypes, ledger.StructureID),
		aux:      aux,
	}, nil
}

func (c *composeContext) session() *engine.Session {
	return engine.NewSession(c.ledger, c.resolver, c.aux)
}

func view(sess *engine.Session) *portssvc.DraftView {
	return &portssvc.DraftView{
		Voucher:    sess.Voucher(),
		Totals:     sess.Totals(),
		Violations: sess.Violations(),
	}
}

// fiscalYearFor returns the fiscal year containing date, or "" when none does.
func (s *voucherService) fiscalYearFor(ctx context.Context, date time.Time) (string, error) {
	fy, err := s.fiscal.FindFiscalYearByDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find fiscal year: %w", err)
	}
	return fy.FiscalYearID, nil
}

// refreshNumbers re-derives the numbers the session marked stale.
func (s *voucherService) refreshNumbers(ctx context.Context, sess *engine.Session) error {
	dailyStale, numberStale := sess.NumberingStale()
	if !dailyStale && !numberStale {
		return nil
	}
	v := sess.Voucher()

	daily := v.DailyNumber
	if dailyStale {
		next, err := s.numbers.NextDailyNumber(ctx, v.VoucherDate)
		if err != nil {
			return err
		}
		daily = next
	}

	crossRef, number := v.CrossReference, v.VoucherNumber
	if numberStale {
		if v.IsNew() {
			next, err := s.numbers.NextCrossReference(ctx, v.LedgerID, v.FiscalYearID)
			if err != nil {
				return err
			}
			crossRef = next
			v.CrossReference = next
		}
		preview, err := s.numbers.PreviewVoucherNumber(ctx, sess.Ledger(), v)
		if err != nil {
			return err
		}
		number = preview
	}
	sess.SetNumbering(daily, crossRef, number)
	return nil
}

func (s *voucherService) NewDraft(ctx context.Context, actor domain.Actor, ledgerID, branchID string) (*portssvc.DraftView, error) {
	if err := s.Authorize(ctx, actor, domain.PermVoucherWrite); err != nil {
		return nil, err
	}
	cctx, err := s.loadContext(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	fiscalYearID, err := s.fiscalYearFor(ctx, today)
	if err != nil {
		return nil, err
	}

	sess := cctx.session()
	if err := sess.Start(fiscalYearID, branchID, today); err != nil {
		return nil, err
	}
	if err := s.refreshNumbers(ctx, sess); err != nil {
		return nil, err
	}
	return view(sess), nil
}

// resumeStored pins the fields of draft that only the store may decide. Numbers
// change only through the allocator inside the save transaction.
func (s *voucherService) resumeStored(ctx context.Context, draft *domain.Voucher) (*domain.Voucher, error) {
	if draft.IsNew() {
		return nil, nil
	}
	stored, err := s.vouchers.FindVoucherByID(ctx, draft.VoucherID)
	if err != nil {
		return nil, err
	}
	draft.Status = stored.Status
	draft.VoucherNumber = stored.VoucherNumber
	draft.DailyNumber = stored.DailyNumber
	draft.CrossReference = stored.CrossReference
	draft.AuditFields.CreatedAt = stored.CreatedAt
	draft.AuditFields.CreatedBy = stored.CreatedBy
	draft.ReviewedBy, draft.ReviewedAt = stored.ReviewedBy, stored.ReviewedAt
	draft.ApprovedBy, draft.ApprovedAt = stored.ApprovedBy, stored.ApprovedAt
	return stored, nil
}

func (s *voucherService) ApplyEdits(ctx context.Context, actor domain.Actor, draft domain.Voucher, edits []engine.Edit) (*portssvc.DraftView, error) {
	if err := s.Authorize(ctx, actor, domain.PermVoucherWrite); err != nil {
		return nil, err
	}
	requested := draft.VoucherNumber
	if _, err := s.resumeStored(ctx, &draft); err != nil {
		return nil, err
	}
	cctx, err := s.loadContext(ctx, draft.LedgerID)
	if err != nil {
		return nil, err
	}
	keepManualNumber(cctx.ledger, &draft, requested)

	sess := cctx.session()
	if err := sess.Resume(draft); err != nil {
		return nil, err
	}
	var dateEdited, fiscalYearEdited bool
	for i, e := range edits {
		switch e.Op {
		case engine.OpSetDate:
			dateEdited = true
		case engine.OpSetFiscalYear:
			fiscalYearEdited = true
		}
		if e.Op == engine.OpSetLedger {
			next, err := s.loadContext(ctx, e.Value)
			if err != nil {
				return nil, err
			}
			err = sess.SetLedger(next.ledger, next.resolver)
			if err != nil {
				return nil, fmt.Errorf("edit %d: %w", i+1, err)
			}
			continue
		}
		if err := sess.Apply(e); err != nil {
			return nil, fmt.Errorf("edit %d: %w", i+1, err)
		}
	}
	if dateEdited && !fiscalYearEdited {
		if err := s.followFiscalYear(ctx, sess); err != nil {
			return nil, err
		}
	}
	if err := s.refreshNumbers(ctx, sess); err != nil {
		return nil, err
	}
	return view(sess), nil
}

// followFiscalYear moves the session to the fiscal year containing its date.
// A date outside every fiscal year leaves the session unchanged.
func (s *voucherService) followFiscalYear(ctx context.Context, sess *engine.Session) error {
	v := sess.Voucher()
	fiscalYearID, err := s.fiscalYearFor(ctx, v.VoucherDate)
	if err != nil {
		return err
	}
	if fiscalYearID == "" || fiscalYearID == v.FiscalYearID {
		return nil
	}
	return sess.SetFiscalYear(fiscalYearID)
}

// keepManualNumber restores the number the user entered on ledgers that do
// not issue numbers.
func keepManualNumber(ledger domain.Ledger, draft *domain.Voucher, requested string) {
	if ledger.Numbering.Scope == domain.ScopeNone {
		draft.VoucherNumber = requested
	}
}

// renumbering lists the numbers a save must derive inside its transaction.
type renumbering struct {
	fresh    bool
	daily    bool
	crossRef bool
	number   bool
}

// renumberingFor compares draft with the stored row. A voucher moved to another
// ledger or fiscal year needs a new cross-reference; a draft moved to another
// ledger, branch or fiscal year also needs a new voucher number.
func renumberingFor(stored *domain.Voucher, draft domain.Voucher) renumbering {
	if stored == nil {
		return renumbering{fresh: true}
	}
	moved := stored.LedgerID != draft.LedgerID || stored.FiscalYearID != draft.FiscalYearID
	return renumbering{
		daily:    !domain.DateOnly(stored.VoucherDate).Equal(domain.DateOnly(draft.VoucherDate)),
		crossRef: moved,
		number:   stored.Status == domain.StatusDraft && (moved || stored.BranchID != draft.BranchID),
	}
}

func (s *voucherService) Save(ctx context.Context, actor domain.Actor, draft domain.Voucher, target domain.VoucherStatus) (*domain.Voucher, error) {
	ctx, span := tracer.Start(ctx, "VoucherService.Save")
	defer span.End()
	span.SetAttributes(
		attribute.String("voucher.id", draft.VoucherID),
		attribute.String("voucher.target_status", string(target)),
	)
	logger := s.GetLogger(ctx)

	if err := s.Authorize(ctx, actor, domain.PermVoucherWrite); err != nil {
		return nil, err
	}
	requested := draft.VoucherNumber
	stored, err := s.resumeStored(ctx, &draft)
	if err != nil {
		return nil, err
	}
	renum := renumberingFor(stored, draft)

	cctx, err := s.loadContext(ctx, draft.LedgerID)
	if err != nil {
		return nil, err
	}
	keepManualNumber(cctx.ledger, &draft, requested)
	periods, err := s.fiscal.ListPeriodsByFiscalYear(ctx, draft.FiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fiscal periods: %w", err)
	}

	sess := cctx.session()
	if err := sess.Resume(draft); err != nil {
		return nil, err
	}
	if err := sess.Validate(target, periods, actor.UserID); err != nil {
		logger.Debug("Voucher rejected", slog.String("voucher_id", draft.VoucherID), slog.String("reason", err.Error()))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	v := sess.Voucher()
	if err := s.checkReferences(ctx, v); err != nil {
		_ = sess.Reject(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := sess.BeginPersist(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	v.Status = target
	if renum.fresh {
		v.VoucherID = uuid.NewString()
		v.CreatedAt = now
		v.CreatedBy = actor.UserID
	}
	v.LastUpdatedAt = now
	v.LastUpdatedBy = actor.UserID
	for i := range v.Lines {
		if v.Lines[i].IsTemporary() {
			v.Lines[i].LineID = uuid.NewString()
		}
	}

	for attempt := 1; ; attempt++ {
		err = s.persist(ctx, actor, cctx.ledger, &v, renum)
		if errors.Is(err, apperrors.ErrSequenceConflict) && attempt < maxAllocationAttempts {
			logger.Warn("Sequence number taken concurrently, retrying",
				slog.String("voucher_id", v.VoucherID),
				slog.Int("attempt", attempt))
			continue
		}
		break
	}
	if err != nil {
		_ = sess.Reject(err)
		s.LogError(ctx, err, "Failed to save voucher", slog.String("voucher_id", v.VoucherID))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := sess.MarkSaved(v); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("voucher.number", v.VoucherNumber))
	logger.Info("Voucher saved",
		slog.String("voucher_id", v.VoucherID),
		slog.String("voucher_number", v.VoucherNumber),
		slog.String("status", string(v.Status)),
		slog.Int("lines", len(v.Lines)))
	return &v, nil
}

// checkReferences verifies header references against the lookups and the
// subsidiary number against other vouchers of the fiscal year.
func (s *voucherService) checkReferences(ctx context.Context, v domain.Voucher) error {
	if _, err := s.ledgers.FindBranchByID(ctx, v.BranchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: branch %s does not exist", apperrors.ErrBranchRequired, v.BranchID)
		}
		return err
	}
	if v.DocumentTypeCode != "" {
		ok, err := s.settings.DocumentTypeExists(ctx, v.DocumentTypeCode)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: unknown document type %s", apperrors.ErrValidation, v.DocumentTypeCode)
		}
	}
	seen := make(map[string]bool)
	for _, l := range v.Lines {
		if l.CurrencyCode == "" || seen[l.CurrencyCode] {
			continue
		}
		seen[l.CurrencyCode] = true
		ok, err := s.settings.CurrencyExists(ctx, l.CurrencyCode)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewRowError(fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, l.CurrencyCode), l.RowNumber)
		}
	}
	return s.checkSubsidiary(ctx, s.vouchers, v)
}

func (s *voucherService) checkSubsidiary(ctx context.Context, r portsrepo.VoucherReader, v domain.Voucher) error {
	if v.SubsidiaryNumber == "" {
		return nil
	}
	taken, err := r.SubsidiaryNumberExists(ctx, v.FiscalYearID, v.SubsidiaryNumber, v.VoucherID)
	if err != nil {
		return fmt.Errorf("failed to check subsidiary number: %w", err)
	}
	if taken {
		return apperrors.ErrSubsidiaryNumberDuplicate
	}
	return nil
}

// persist writes header and lines in one transaction. The period gate is
// evaluated again inside it, immediately before commit.
func (s *voucherService) persist(ctx context.Context, actor domain.Actor, ledger domain.Ledger, v *domain.Voucher, renum renumbering) error {
	keys := numberLockKeys(*v, renum.fresh || renum.crossRef, renum.daily)
	return withLocks(ctx, s.locker, keys, s.lockTTL, func(ctx context.Context) error {
		return s.vouchers.WithinTx(ctx, func(ctx context.Context, tx portsrepo.VoucherTx) error {
			if err := s.checkSubsidiary(ctx, tx, *v); err != nil {
				return err
			}
			if renum.fresh {
				if err := s.numbers.AllocateInTx(ctx, tx, ledger, v); err != nil {
					return err
				}
				if err := tx.InsertVoucher(ctx, *v); err != nil {
					return err
				}
			} else {
				if err := s.renumberInTx(ctx, tx, ledger, v, renum); err != nil {
					return err
				}
				if err := tx.UpdateVoucher(ctx, *v); err != nil {
					return err
				}
			}
			if err := tx.ReplaceLines(ctx, v.VoucherID, v.Lines); err != nil {
				return err
			}
			return s.periods.ValidateInTx(ctx, tx, v.VoucherDate, v.FiscalYearID, actor.UserID)
		})
	})
}

func (s *voucherService) renumberInTx(ctx context.Context, tx portsrepo.VoucherTx, ledger domain.Ledger, v *domain.Voucher, renum renumbering) error {
	if renum.daily {
		if err := s.numbers.RefreshDailyInTx(ctx, tx, v); err != nil {
			return err
		}
	}
	if renum.crossRef {
		if err := s.numbers.RefreshCrossReferenceInTx(ctx, tx, v); err != nil {
			return err
		}
	}
	if renum.number {
		return s.numbers.ReissueInTx(ctx, tx, ledger, v)
	}
	return nil
}

func (s *voucherService) Copy(ctx context.Context, actor domain.Actor, voucherID string) (*portssvc.DraftView, error) {
	if err := s.Authorize(ctx, actor, domain.PermVoucherWrite); err != nil {
		return nil, err
	}
	src, err := s.vouchers.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	cctx, err := s.loadContext(ctx, src.LedgerID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	sess := cctx.session()
	if err := sess.Seed(*src, today); err != nil {
		return nil, err
	}
	fiscalYearID, err := s.fiscalYearFor(ctx, today)
	if err != nil {
		return nil, err
	}
	if fiscalYearID != "" {
		if err := sess.SetFiscalYear(fiscalYearID); err != nil {
			return nil, err
		}
	}
	if err := s.refreshNumbers(ctx, sess); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Voucher copied", slog.String("source_voucher_id", voucherID), slog.String("user_id", actor.UserID))
	return view(sess), nil
}

func (s *voucherService) Get(ctx context.Context, voucherID string) (*portssvc.DraftView, error) {
	v, err := s.vouchers.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	cctx, err := s.loadContext(ctx, v.LedgerID)
	if err != nil {
		return nil, err
	}
	sess := cctx.session()
	if err := sess.Resume(*v); err != nil {
		return nil, err
	}
	return &portssvc.DraftView{
		Voucher:    *v,
		Totals:     engine.ComputeTotals(v.Lines),
		Violations: sess.Violations(),
	}, nil
}

func (s *voucherService) Review(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error) {
	if err := s.Authorize(ctx, actor, domain.PermVoucherReview); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, voucherID, domain.StatusTemporary, domain.StatusReviewed, func(v *domain.Voucher, now time.Time) {
		v.ReviewedBy = actor.UserID
		v.ReviewedAt = &now
	})
}

func (s *voucherService) Finalize(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error) {
	if err := s.Authorize(ctx, actor, domain.PermVoucherFinalize); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, voucherID, domain.StatusReviewed, domain.StatusFinal, func(v *domain.Voucher, now time.Time) {
		v.ApprovedBy = actor.UserID
		v.ApprovedAt = &now
	})
}

func (s *voucherService) RevertToTemporary(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error) {
	if err := s.Authorize(ctx, actor, domain.PermVoucherRevert); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, voucherID, domain.StatusReviewed, domain.StatusTemporary, func(v *domain.Voucher, _ time.Time) {
		v.ReviewedBy = ""
		v.ReviewedAt = nil
	})
}

// transition moves a stored voucher from one status to the next inside a
// transaction, re-checking balance and the period gate.
func (s *voucherService) transition(ctx context.Context, actor domain.Actor, voucherID string, from, to domain.VoucherStatus, stamp func(v *domain.Voucher, now time.Time)) (*domain.Voucher, error) {
	ctx, span := tracer.Start(ctx, "VoucherService.Transition")
	defer span.End()
	span.SetAttributes(attribute.String("voucher.id", voucherID), attribute.String("voucher.to_status", string(to)))

	var out domain.Voucher
	err := s.vouchers.WithinTx(ctx, func(ctx context.Context, tx portsrepo.VoucherTx) error {
		v, err := tx.FindVoucherByID(ctx, voucherID)
		if err != nil {
			return err
		}
		if v.Status != from || !v.Status.CanTransition(to) {
			return fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusTransition, v.Status, to)
		}
		if err := engine.CheckStatusGate(engine.ComputeTotals(v.Lines), to); err != nil {
			return err
		}
		if err := s.periods.ValidateInTx(ctx, tx, v.VoucherDate, v.FiscalYearID, actor.UserID); err != nil {
			return err
		}

		now := s.now().UTC()
		v.Status = to
		v.LastUpdatedAt = now
		v.LastUpdatedBy = actor.UserID
		stamp(v, now)
		if err := tx.UpdateVoucherStatus(ctx, *v); err != nil {
			return err
		}
		out = *v
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.LogInfo(ctx, "Voucher status changed",
		slog.String("voucher_id", voucherID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("user_id", actor.UserID))
	return &out, nil
}
