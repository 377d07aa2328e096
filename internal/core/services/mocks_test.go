package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
)

// --- Mock VoucherTx ---
type MockVoucherTx struct {
	mock.Mock
}

var _ portsrepo.VoucherTx = (*MockVoucherTx)(nil)

func (m *MockVoucherTx) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherTx) MaxDailyNumber(ctx context.Context, date time.Time) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherTx) MaxCrossReference(ctx context.Context, ledgerID, fiscalYearID string) (int64, error) {
	args := m.Called(ctx, ledgerID, fiscalYearID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherTx) SubsidiaryNumberExists(ctx context.Context, fiscalYearID, number, excludeVoucherID string) (bool, error) {
	args := m.Called(ctx, fiscalYearID, number, excludeVoucherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherTx) InsertVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherTx) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherTx) ReplaceLines(ctx context.Context, voucherID string, lines []domain.LineItem) error {
	args := m.Called(ctx, voucherID, lines)
	return args.Error(0)
}

func (m *MockVoucherTx) UpdateVoucherStatus(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherTx) IncrementCounter(ctx context.Context, ledgerID string, key domain.CounterKey) (int64, error) {
	args := m.Called(ctx, ledgerID, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherTx) ListPeriodsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

// --- Mock VoucherRepositoryFacade ---
// Reads go through the embedded mock; WithinTx hands Tx to the callback.
type MockVoucherRepository struct {
	MockVoucherTx
	Tx *MockVoucherTx
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	m.Called(ctx)
	return fn(ctx, m.Tx)
}

// --- Mock LedgerRepositoryFacade ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

// --- Mock AccountRepositoryFacade ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) ListAccountsByStructure(ctx context.Context, structureID string) ([]domain.Account, error) {
	args := m.Called(ctx, structureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListDetailTypes(ctx context.Context) ([]domain.DetailType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DetailType), args.Error(1)
}

// --- Mock FiscalRepositoryFacade ---
type MockFiscalRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalRepositoryFacade = (*MockFiscalRepository)(nil)

func (m *MockFiscalRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) ListPeriodsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

// --- Mock SettingsRepositoryFacade ---
type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) AuxiliaryCurrencies(ctx context.Context) (domain.AuxiliaryCurrencies, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AuxiliaryCurrencies), args.Error(1)
}

func (m *MockSettingsRepository) CurrencyExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsRepository) DocumentTypeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// --- Mock Locker ---
type MockLocker struct {
	mock.Mock
}

var _ portssvc.Locker = (*MockLocker)(nil)

func (m *MockLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, key, ttl)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- Mock VoucherComposerSvc ---
type MockVoucherComposer struct {
	mock.Mock
}

var _ portssvc.VoucherComposerSvc = (*MockVoucherComposer)(nil)

func (m *MockVoucherComposer) NewDraft(ctx context.Context, actor domain.Actor, ledgerID, branchID string) (*portssvc.DraftView, error) {
	args := m.Called(ctx, actor, ledgerID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DraftView), args.Error(1)
}

func (m *MockVoucherComposer) ApplyEdits(ctx context.Context, actor domain.Actor, draft domain.Voucher, edits []engine.Edit) (*portssvc.DraftView, error) {
	args := m.Called(ctx, actor, draft, edits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DraftView), args.Error(1)
}

func (m *MockVoucherComposer) Save(ctx context.Context, actor domain.Actor, draft domain.Voucher, target domain.VoucherStatus) (*domain.Voucher, error) {
	args := m.Called(ctx, actor, draft, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherComposer) Copy(ctx context.Context, actor domain.Actor, voucherID string) (*portssvc.DraftView, error) {
	args := m.Called(ctx, actor, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DraftView), args.Error(1)
}
