package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/services"
)

func importRow(group, account string, debit, credit int64) domain.ImportRow {
	return domain.ImportRow{
		GroupID:      group,
		LedgerID:     "L1",
		BranchID:     "BR-1",
		VoucherDate:  today,
		AccountID:    account,
		Description:  "imported",
		Debit:        decimal.NewFromInt(debit),
		Credit:       decimal.NewFromInt(credit),
		CurrencyCode: "irr",
	}
}

func TestImport_SavesEachGroup(t *testing.T) {
	composer := new(MockVoucherComposer)
	fiscal := new(MockFiscalRepository)
	actor := domain.NewActor("user-1", domain.PermVoucherWrite)

	g2a := importRow("G2", "A", 50, 0)
	g2a.FiscalYearID = "FY9"
	rows := []domain.ImportRow{
		importRow("G1", "A", 100, 0),
		g2a,
		importRow("G1", "B", 0, 100),
		importRow("G2", "B", 0, 40),
	}

	fiscal.On("FindFiscalYearByDate", mock.Anything, domain.DateOnly(today)).Return(&domain.FiscalYear{FiscalYearID: "FY1"}, nil).Once()
	composer.On("Save", mock.Anything, actor, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.ImportGroupID == "G1"
	}), domain.StatusTemporary).Return(&domain.Voucher{VoucherID: "V1", VoucherNumber: "42"}, nil).Once()
	composer.On("Save", mock.Anything, actor, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.ImportGroupID == "G2"
	}), domain.StatusTemporary).Return(nil, apperrors.ErrUnbalanced).Once()

	results, err := services.NewImportService(composer, fiscal).Import(context.Background(), actor, rows, domain.StatusTemporary)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.ImportResult{GroupID: "G1", VoucherID: "V1", VoucherNumber: "42"}, results[0])
	assert.Equal(t, "G2", results[1].GroupID)
	assert.Empty(t, results[1].VoucherID)
	assert.Equal(t, apperrors.ErrUnbalanced.Error(), results[1].Error)
	composer.AssertExpectations(t)
	fiscal.AssertExpectations(t)
}

func TestImport_BuildsDraftFromRows(t *testing.T) {
	composer := new(MockVoucherComposer)
	fiscal := new(MockFiscalRepository)
	actor := domain.NewActor("user-1", domain.PermVoucherWrite)

	credit := importRow("G1", "B", 0, 75)
	credit.Rates = [3]decimal.Decimal{decimal.NewFromInt(2)}
	credit.Reverse = [3]bool{true}
	rows := []domain.ImportRow{importRow("G1", "A", 75, 0), credit}
	rows[0].FiscalYearID = "FY1"

	var got domain.Voucher
	composer.On("Save", mock.Anything, actor, mock.Anything, domain.StatusDraft).
		Run(func(args mock.Arguments) { got = args.Get(2).(domain.Voucher) }).
		Return(&domain.Voucher{VoucherID: "V1"}, nil).Once()

	_, err := services.NewImportService(composer, fiscal).Import(context.Background(), actor, rows, domain.StatusDraft)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.Equal(t, "FY1", got.FiscalYearID)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, 2, got.Lines[1].RowNumber)
	assert.Equal(t, "IRR", got.Lines[1].CurrencyCode)
	assert.True(t, got.Lines[0].Debit.Equal(decimal.NewFromInt(75)))
	assert.True(t, got.Lines[1].Credit.Equal(decimal.NewFromInt(75)))
	assert.True(t, got.Lines[1].Aux[0].Reverse)
	assert.True(t, got.Lines[1].IsTemporary())
	fiscal.AssertNotCalled(t, "FindFiscalYearByDate", mock.Anything, mock.Anything)
}

func TestImport_Rejections(t *testing.T) {
	actor := domain.NewActor("user-1", domain.PermVoucherWrite)
	svc := services.NewImportService(new(MockVoucherComposer), new(MockFiscalRepository))

	_, err := svc.Import(context.Background(), actor, nil, domain.StatusDraft)
	assert.ErrorIs(t, err, services.ErrImportEmpty)

	_, err = svc.Import(context.Background(), domain.NewActor("viewer"), []domain.ImportRow{importRow("G1", "A", 1, 0)}, domain.StatusDraft)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Import(context.Background(), actor, []domain.ImportRow{importRow("G1", "A", 1, 0), importRow(" ", "B", 0, 1)}, domain.StatusDraft)
	var rowErr *apperrors.RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Row)
	assert.ErrorIs(t, err, apperrors.ErrMissingRequiredField)
}
