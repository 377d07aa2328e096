package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/services"
)

func allocationTx(daily, crossRef int64) *MockVoucherTx {
	tx := new(MockVoucherTx)
	tx.On("MaxDailyNumber", mock.Anything, mock.Anything).Return(daily, nil)
	tx.On("MaxCrossReference", mock.Anything, mock.Anything, mock.Anything).Return(crossRef, nil)
	return tx
}

func TestAllocateInTx_LedgerScopePerYear(t *testing.T) {
	tx := allocationTx(2, 30)
	tx.On("IncrementCounter", mock.Anything, "L1", domain.CounterKey{FiscalYearID: "F"}).Return(int64(42), nil).Once()
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeLedger, ResetYear: true}}
	v := &domain.Voucher{LedgerID: "L1", FiscalYearID: "F", BranchID: "X", VoucherDate: today}

	err := services.NewSequenceService(nil).AllocateInTx(context.Background(), tx, ledger, v)

	require.NoError(t, err)
	assert.Equal(t, "42", v.VoucherNumber)
	assert.Equal(t, int64(3), v.DailyNumber)
	assert.Equal(t, int64(31), v.CrossReference)
	tx.AssertExpectations(t)
}

func TestAllocateInTx_BranchScopeAcrossYears(t *testing.T) {
	tx := allocationTx(0, 0)
	tx.On("IncrementCounter", mock.Anything, "L1", domain.CounterKey{BranchID: "X"}).Return(int64(8), nil).Once()
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeBranch}}
	v := &domain.Voucher{LedgerID: "L1", FiscalYearID: "G", BranchID: "X", VoucherDate: today}

	err := services.NewSequenceService(nil).AllocateInTx(context.Background(), tx, ledger, v)

	require.NoError(t, err)
	assert.Equal(t, "8", v.VoucherNumber)
}

func TestAllocateInTx_CompanyScopeUsesCrossReference(t *testing.T) {
	tx := allocationTx(0, 14)
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeCompany}}
	v := &domain.Voucher{LedgerID: "L1", FiscalYearID: "F", VoucherDate: today}

	err := services.NewSequenceService(nil).AllocateInTx(context.Background(), tx, ledger, v)

	require.NoError(t, err)
	assert.Equal(t, "15", v.VoucherNumber)
	tx.AssertNotCalled(t, "IncrementCounter", mock.Anything, mock.Anything, mock.Anything)
}

func TestAllocateInTx_ManualNumber(t *testing.T) {
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeNone}}

	v := &domain.Voucher{LedgerID: "L1", VoucherNumber: "  JV-9 ", VoucherDate: today}
	err := services.NewSequenceService(nil).AllocateInTx(context.Background(), allocationTx(0, 0), ledger, v)
	require.NoError(t, err)
	assert.Equal(t, "JV-9", v.VoucherNumber)

	missing := &domain.Voucher{LedgerID: "L1", VoucherDate: today}
	err = services.NewSequenceService(nil).AllocateInTx(context.Background(), allocationTx(0, 0), ledger, missing)
	assert.ErrorIs(t, err, apperrors.ErrManualNumberRequired)
}

func TestAllocateInTx_CounterFailure(t *testing.T) {
	tx := allocationTx(0, 0)
	tx.On("IncrementCounter", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeLedger}}

	err := services.NewSequenceService(nil).AllocateInTx(context.Background(), tx, ledger, &domain.Voucher{LedgerID: "L1", VoucherDate: today})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to issue voucher number")
}

func TestRefreshDailyInTx(t *testing.T) {
	tx := new(MockVoucherTx)
	date := time.Date(2026, time.April, 2, 17, 45, 0, 0, time.UTC)
	tx.On("MaxDailyNumber", mock.Anything, domain.DateOnly(date)).Return(int64(11), nil).Once()
	v := &domain.Voucher{VoucherDate: date, DailyNumber: 3}

	require.NoError(t, services.NewSequenceService(nil).RefreshDailyInTx(context.Background(), tx, v))
	assert.Equal(t, int64(12), v.DailyNumber)
}

func TestRefreshCrossReferenceInTx(t *testing.T) {
	tx := new(MockVoucherTx)
	tx.On("MaxCrossReference", mock.Anything, "L2", "G").Return(int64(19), nil).Once()
	v := &domain.Voucher{LedgerID: "L2", FiscalYearID: "G", CrossReference: 4, VoucherNumber: "4"}

	require.NoError(t, services.NewSequenceService(nil).RefreshCrossReferenceInTx(context.Background(), tx, v))
	assert.Equal(t, int64(20), v.CrossReference)
	assert.Equal(t, "4", v.VoucherNumber)
}

func TestReissueInTx_IssuesFromNewBranchCounter(t *testing.T) {
	tx := new(MockVoucherTx)
	tx.On("IncrementCounter", mock.Anything, "L1", domain.CounterKey{BranchID: "Y"}).Return(int64(9), nil).Once()
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeBranch}}
	v := &domain.Voucher{VoucherID: "V1", LedgerID: "L1", FiscalYearID: "F", BranchID: "Y", VoucherNumber: "3", DailyNumber: 2}

	err := services.NewSequenceService(nil).ReissueInTx(context.Background(), tx, ledger, v)

	require.NoError(t, err)
	assert.Equal(t, "9", v.VoucherNumber)
	assert.Equal(t, int64(2), v.DailyNumber)
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "MaxDailyNumber", mock.Anything, mock.Anything)
}

func TestReissueInTx_CompanyScopeFollowsCrossReference(t *testing.T) {
	tx := new(MockVoucherTx)
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeCompany}}
	v := &domain.Voucher{VoucherID: "V1", LedgerID: "L1", FiscalYearID: "F", CrossReference: 21, VoucherNumber: "5"}

	require.NoError(t, services.NewSequenceService(nil).ReissueInTx(context.Background(), tx, ledger, v))
	assert.Equal(t, "21", v.VoucherNumber)
	tx.AssertNotCalled(t, "IncrementCounter", mock.Anything, mock.Anything, mock.Anything)
}

func TestReissueInTx_KeepsManualNumber(t *testing.T) {
	tx := new(MockVoucherTx)
	ledger := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeNone}}
	v := &domain.Voucher{VoucherID: "V1", LedgerID: "L1", BranchID: "Y", VoucherNumber: " JV-7 "}

	require.NoError(t, services.NewSequenceService(nil).ReissueInTx(context.Background(), tx, ledger, v))
	assert.Equal(t, "JV-7", v.VoucherNumber)
	tx.AssertNotCalled(t, "IncrementCounter", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreviewVoucherNumber(t *testing.T) {
	repo := new(MockVoucherRepository)
	repo.On("MaxCrossReference", mock.Anything, "L1", "F").Return(int64(6), nil).Once()
	svc := services.NewSequenceService(repo)

	company := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{Scope: domain.ScopeCompany}}
	number, err := svc.PreviewVoucherNumber(context.Background(), company, domain.Voucher{LedgerID: "L1", FiscalYearID: "F"})
	require.NoError(t, err)
	assert.Equal(t, "7", number)

	branch := domain.Ledger{LedgerID: "L1", Numbering: domain.NumberingConfig{
		Scope:    domain.ScopeBranch,
		Counters: map[domain.CounterKey]int64{{BranchID: "X"}: 7},
	}}
	number, err = svc.PreviewVoucherNumber(context.Background(), branch, domain.Voucher{LedgerID: "L1", FiscalYearID: "F", BranchID: "X"})
	require.NoError(t, err)
	assert.Equal(t, "8", number)
	repo.AssertExpectations(t)
}

func TestNextDailyNumber_WrapsReadError(t *testing.T) {
	repo := new(MockVoucherRepository)
	repo.On("MaxDailyNumber", mock.Anything, mock.Anything).Return(int64(0), apperrors.ErrInternal).Once()

	_, err := services.NewSequenceService(repo).NextDailyNumber(context.Background(), today)

	assert.ErrorIs(t, err, apperrors.ErrInternal)
}
