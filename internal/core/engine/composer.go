package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// State is the composing session state.
type State string

const (
	StateEmpty      State = "empty"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StatePersisting State = "persisting"
	StateSaved      State = "saved"
)

// ErrInvalidState is returned when a session step is called out of order.
var ErrInvalidState = fmt.Errorf("%w: session is not in a state that allows this step", apperrors.ErrValidation)

// ErrRowOutOfRange is returned for a row number that does not exist.
var ErrRowOutOfRange = fmt.Errorf("%w: row out of range", apperrors.ErrValidation)

// Session composes one voucher. It is not safe for concurrent use; one user
// edits one draft at a time.
type Session struct {
	state     State
	voucher   domain.Voucher
	ledger    domain.Ledger
	aux       domain.AuxiliaryCurrencies
	resolver  *CapabilityResolver
	validator *RowValidator
	lastErr   error

	dailyStale  bool
	numberStale bool
}

// NewSession returns an empty session bound to a ledger and its chart of accounts.
func NewSession(ledger domain.Ledger, resolver *CapabilityResolver, aux domain.AuxiliaryCurrencies) *Session {
	return &Session{
		state:     StateEmpty,
		ledger:    ledger,
		aux:       aux,
		resolver:  resolver,
		validator: NewRowValidator(resolver),
	}
}

// Start moves Empty to Editing with one blank line dated today. An empty
// branchID falls back to the ledger default branch.
func (s *Session) Start(fiscalYearID, branchID string, today time.Time) error {
	if s.state != StateEmpty {
		return ErrInvalidState
	}
	if branchID == "" {
		branchID = s.ledger.DefaultBranchID
	}
	s.voucher = domain.Voucher{
		FiscalYearID: fiscalYearID,
		LedgerID:     s.ledger.LedgerID,
		BranchID:     branchID,
		VoucherDate:  domain.DateOnly(today),
		Status:       domain.StatusDraft,
	}
	s.voucher.Lines = []domain.LineItem{s.blankLine()}
	s.voucher.Renumber()
	s.state = StateEditing
	s.dailyStale, s.numberStale = true, true
	return nil
}

// Resume loads an existing voucher or draft for editing. Auxiliary amounts
// are re-derived from the base amounts and rates.
func (s *Session) Resume(v domain.Voucher) error {
	if s.state != StateEmpty {
		return ErrInvalidState
	}
	s.voucher = v
	s.voucher.Lines = cloneLines(v.Lines)
	if s.voucher.Status == "" {
		s.voucher.Status = domain.StatusDraft
	}
	for i := range s.voucher.Lines {
		l := &s.voucher.Lines[i]
		if l.LineID == "" {
			l.LineID = domain.NewTempLineID()
		}
		PinAuxiliaryRates(l, s.aux)
	}
	s.voucher.Renumber()
	s.state = StateEditing
	return nil
}

// Seed starts a copy of src: identity, numbers and audit are cleared and the
// copy is dated today as a draft.
func (s *Session) Seed(src domain.Voucher, today time.Time) error {
	if s.state != StateEmpty {
		return ErrInvalidState
	}
	s.voucher = domain.Voucher{
		FiscalYearID:     src.FiscalYearID,
		LedgerID:         src.LedgerID,
		BranchID:         src.BranchID,
		VoucherDate:      domain.DateOnly(today),
		DocumentTypeCode: src.DocumentTypeCode,
		Description:      src.Description,
		Status:           domain.StatusDraft,
	}
	s.voucher.Lines = cloneLines(src.Lines)
	for i := range s.voucher.Lines {
		s.voucher.Lines[i].LineID = domain.NewTempLineID()
	}
	if len(s.voucher.Lines) == 0 {
		s.voucher.Lines = []domain.LineItem{s.blankLine()}
	}
	s.voucher.Renumber()
	s.state = StateEditing
	s.dailyStale, s.numberStale = true, true
	return nil
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Err returns the failure that put the session into Rejected.
func (s *Session) Err() error { return s.lastErr }

// Voucher returns a copy of the voucher being composed.
func (s *Session) Voucher() domain.Voucher {
	v := s.voucher
	v.Lines = cloneLines(s.voucher.Lines)
	return v
}

// Ledger returns the ledger the session is bound to.
func (s *Session) Ledger() domain.Ledger { return s.ledger }

// Totals returns the running totals.
func (s *Session) Totals() Totals { return ComputeTotals(s.voucher.Lines) }

// Violations lists the current first failure of every non-blank row.
func (s *Session) Violations() []error {
	var errs []error
	for i := range s.voucher.Lines {
		if s.voucher.Lines[i].IsBlank() {
			continue
		}
		if err := s.validator.ValidateRow(s.voucher.Lines, i); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// NumberingStale reports which numbers need re-deriving after edits: the daily
// number after a date change, the voucher number after a ledger, branch or
// fiscal year change while still a draft.
func (s *Session) NumberingStale() (daily, voucherNumber bool) {
	return s.dailyStale, s.numberStale
}

// SetNumbering stores allocator results and clears the stale flags.
func (s *Session) SetNumbering(daily, crossRef int64, voucherNumber string) {
	s.voucher.DailyNumber = daily
	if s.voucher.IsNew() {
		s.voucher.CrossReference = crossRef
	}
	if s.ledger.Numbering.Scope != domain.ScopeNone {
		s.voucher.VoucherNumber = voucherNumber
	}
	s.dailyStale, s.numberStale = false, false
}

// SetDailyNumber stores a re-derived daily number.
func (s *Session) SetDailyNumber(daily int64) {
	s.voucher.DailyNumber = daily
	s.dailyStale = false
}

func (s *Session) editable() error {
	switch s.state {
	case StateEditing:
	case StateRejected:
		s.state = StateEditing
	default:
		return ErrInvalidState
	}
	if s.voucher.Status.ReadOnly() {
		return apperrors.ErrReadOnly
	}
	return nil
}

func (s *Session) line(row int) (*domain.LineItem, error) {
	if row < 1 || row > len(s.voucher.Lines) {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	return &s.voucher.Lines[row-1], nil
}

func (s *Session) blankLine() domain.LineItem {
	return domain.LineItem{LineID: domain.NewTempLineID(), CurrencyCode: s.ledger.CurrencyCode}
}

// AddLine appends a blank line and returns its row number.
func (s *Session) AddLine() (int, error) {
	if err := s.editable(); err != nil {
		return 0, err
	}
	s.voucher.Lines = append(s.voucher.Lines, s.blankLine())
	s.voucher.Renumber()
	return len(s.voucher.Lines), nil
}

// RemoveLine deletes a row. The voucher always keeps at least one line.
func (s *Session) RemoveLine(row int) error {
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := s.line(row); err != nil {
		return err
	}
	s.voucher.Lines = append(s.voucher.Lines[:row-1], s.voucher.Lines[row:]...)
	if len(s.voucher.Lines) == 0 {
		s.voucher.Lines = []domain.LineItem{s.blankLine()}
	}
	s.voucher.Renumber()
	return nil
}

// MoveLine moves row from to position to and renumbers every row.
func (s *Session) MoveLine(from, to int) error {
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := s.line(from); err != nil {
		return err
	}
	if _, err := s.line(to); err != nil {
		return err
	}
	l := s.voucher.Lines[from-1]
	rest := append(append([]domain.LineItem{}, s.voucher.Lines[:from-1]...), s.voucher.Lines[from:]...)
	out := make([]domain.LineItem, 0, len(s.voucher.Lines))
	out = append(out, rest[:to-1]...)
	out = append(out, l)
	out = append(out, rest[to-1:]...)
	s.voucher.Lines = out
	s.voucher.Renumber()
	return nil
}

// SetAccount selects an account for a row. Detail selections are dropped;
// amounts and descriptive fields are kept. An account with a default currency
// switches the line to it.
func (s *Session) SetAccount(row int, accountID string) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.AccountID = accountID
	l.Details = nil
	if caps, err := s.resolver.Resolve(accountID); err == nil && caps.DefaultCurrency != "" {
		l.CurrencyCode = caps.DefaultCurrency
	}
	if l.CurrencyCode == "" {
		l.CurrencyCode = s.ledger.CurrencyCode
	}
	PinAuxiliaryRates(l, s.aux)
	return nil
}

// SetDebit sets the base debit of a row and clears its credit.
func (s *Session) SetDebit(row int, amount decimal.Decimal) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.SetDebit(amount)
	RecomputeAux(l)
	return nil
}

// SetCredit sets the base credit of a row and clears its debit.
func (s *Session) SetCredit(row int, amount decimal.Decimal) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.SetCredit(amount)
	RecomputeAux(l)
	return nil
}

// SetCurrency changes the currency of a row.
func (s *Session) SetCurrency(row int, code string) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.CurrencyCode = strings.ToUpper(strings.TrimSpace(code))
	PinAuxiliaryRates(l, s.aux)
	return nil
}

// SetRate changes the exchange rate of one auxiliary slot.
func (s *Session) SetRate(row int, slot domain.AuxSlot, rate decimal.Decimal) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !slot.Valid() {
		return fmt.Errorf("%w: unknown auxiliary slot %d", apperrors.ErrValidation, slot)
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.Aux[slot].Rate = rate
	PinAuxiliaryRates(l, s.aux)
	return nil
}

// SetReverse changes the division flag of one auxiliary slot.
func (s *Session) SetReverse(row int, slot domain.AuxSlot, reverse bool) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !slot.Valid() {
		return fmt.Errorf("%w: unknown auxiliary slot %d", apperrors.ErrValidation, slot)
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.Aux[slot].Reverse = reverse
	PinAuxiliaryRates(l, s.aux)
	return nil
}

// SetTracking sets the tracking number and date of a row.
func (s *Session) SetTracking(row int, number string, date *time.Time) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.TrackingNumber = number
	if date != nil {
		d := domain.DateOnly(*date)
		l.TrackingDate = &d
	} else {
		l.TrackingDate = nil
	}
	return nil
}

// SetQuantity sets or clears the quantity of a row.
func (s *Session) SetQuantity(row int, qty *decimal.Decimal) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	if qty == nil {
		l.Quantity = nil
		return nil
	}
	q := *qty
	l.Quantity = &q
	return nil
}

// SetDetail selects a detail instance for a detail type on a row. An empty
// instance id clears the selection.
func (s *Session) SetDetail(row int, detailTypeCode, instanceID string) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	if instanceID == "" {
		delete(l.Details, detailTypeCode)
		return nil
	}
	if l.Details == nil {
		l.Details = make(map[string]string)
	}
	l.Details[detailTypeCode] = instanceID
	return nil
}

// SetDescription sets the description of a row.
func (s *Session) SetDescription(row int, text string) error {
	if err := s.editable(); err != nil {
		return err
	}
	l, err := s.line(row)
	if err != nil {
		return err
	}
	l.Description = text
	return nil
}

// SetDate changes the voucher date; the daily number becomes stale.
func (s *Session) SetDate(date time.Time) error {
	if err := s.editable(); err != nil {
		return err
	}
	d := domain.DateOnly(date)
	if !d.Equal(domain.DateOnly(s.voucher.VoucherDate)) {
		s.dailyStale = true
	}
	s.voucher.VoucherDate = d
	return nil
}

// SetBranch changes the branch.
func (s *Session) SetBranch(branchID string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if branchID != s.voucher.BranchID {
		s.markNumberStale()
	}
	s.voucher.BranchID = branchID
	return nil
}

// SetFiscalYear changes the fiscal year.
func (s *Session) SetFiscalYear(fiscalYearID string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if fiscalYearID != s.voucher.FiscalYearID {
		s.markNumberStale()
	}
	s.voucher.FiscalYearID = fiscalYearID
	return nil
}

// SetLedger rebinds the session to another ledger and chart of accounts.
func (s *Session) SetLedger(ledger domain.Ledger, resolver *CapabilityResolver) error {
	if err := s.editable(); err != nil {
		return err
	}
	if ledger.LedgerID != s.voucher.LedgerID {
		s.markNumberStale()
	}
	s.ledger = ledger
	s.resolver = resolver
	s.validator = NewRowValidator(resolver)
	s.voucher.LedgerID = ledger.LedgerID
	return nil
}

func (s *Session) markNumberStale() {
	if s.voucher.Status == domain.StatusDraft {
		s.numberStale = true
	}
}

// SetVoucherNumber stores a manually entered voucher number.
func (s *Session) SetVoucherNumber(number string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.voucher.VoucherNumber = strings.TrimSpace(number)
	return nil
}

// SetSubsidiaryNumber sets the free-text subsidiary number.
func (s *Session) SetSubsidiaryNumber(number string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.voucher.SubsidiaryNumber = strings.TrimSpace(number)
	return nil
}

// SetDocumentType sets the document-type code.
func (s *Session) SetDocumentType(code string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.voucher.DocumentTypeCode = code
	return nil
}

// SetHeaderDescription sets the voucher description.
func (s *Session) SetHeaderDescription(text string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.voucher.Description = text
	return nil
}

// AutoBalance fills the base difference into an empty or new row.
func (s *Session) AutoBalance() (bool, error) {
	if err := s.editable(); err != nil {
		return false, err
	}
	lines, changed := AutoBalance(s.voucher.Lines, s.aux)
	s.voucher.Lines = lines
	s.voucher.Renumber()
	return changed, nil
}

// Validate moves Editing to Validating and runs, in order: the header checks,
// the fiscal period gate, every row, then the zero and balance gate for
// target. Blank rows are dropped first. On failure the session is Rejected
// and the first error is returned.
func (s *Session) Validate(target domain.VoucherStatus, periods []domain.FiscalPeriod, userID string) error {
	if s.state == StateRejected {
		s.state = StateEditing
	}
	if s.state != StateEditing {
		return ErrInvalidState
	}
	s.state = StateValidating

	if err := s.validate(target, periods, userID); err != nil {
		s.reject(err)
		return err
	}
	return nil
}

func (s *Session) validate(target domain.VoucherStatus, periods []domain.FiscalPeriod, userID string) error {
	if s.voucher.Status.ReadOnly() {
		return apperrors.ErrReadOnly
	}
	if !target.Saveable() || !s.voucher.Status.CanTransition(target) {
		return fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusTransition, s.voucher.Status, target)
	}
	if strings.TrimSpace(s.voucher.BranchID) == "" {
		return apperrors.ErrBranchRequired
	}
	if err := CheckManualNumber(s.ledger.Numbering, s.voucher.VoucherNumber); err != nil {
		return err
	}

	if err := EvaluatePeriodGate(periods, s.voucher.VoucherDate, userID); err != nil {
		return err
	}

	s.voucher.Lines = compactLines(s.voucher.Lines)
	s.voucher.Renumber()
	if err := s.validator.FirstError(s.voucher.Lines); err != nil {
		return err
	}

	return CheckStatusGate(ComputeTotals(s.voucher.Lines), target)
}

func (s *Session) reject(err error) {
	s.lastErr = err
	s.state = StateRejected
	if len(s.voucher.Lines) == 0 {
		s.voucher.Lines = []domain.LineItem{s.blankLine()}
		s.voucher.Renumber()
	}
}

// Reject sends a validated or persisting session back for editing with err,
// used when a check outside the engine fails.
func (s *Session) Reject(err error) error {
	if s.state != StateValidating && s.state != StatePersisting {
		return ErrInvalidState
	}
	s.reject(err)
	return nil
}

// BeginPersist moves Validating to Persisting.
func (s *Session) BeginPersist() error {
	if s.state != StateValidating {
		return ErrInvalidState
	}
	s.state = StatePersisting
	return nil
}

// MarkSaved moves Persisting to Saved with the stored voucher.
func (s *Session) MarkSaved(saved domain.Voucher) error {
	if s.state != StatePersisting {
		return ErrInvalidState
	}
	s.voucher = saved
	s.lastErr = nil
	s.state = StateSaved
	s.dailyStale, s.numberStale = false, false
	return nil
}

// compactLines drops rows on which nothing was entered.
func compactLines(lines []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(lines))
	for _, l := range lines {
		if l.IsBlank() {
			continue
		}
		out = append(out, l)
	}
	for i := range out {
		out[i].RowNumber = i + 1
	}
	return out
}

func cloneLines(lines []domain.LineItem) []domain.LineItem {
	if lines == nil {
		return nil
	}
	out := make([]domain.LineItem, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}
