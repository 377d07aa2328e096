package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
)

// ErrImportEmpty is returned for an import without rows.
var ErrImportEmpty = fmt.Errorf("%w: import contains no rows", apperrors.ErrValidation)

// importService saves one voucher per import group through the regular save
// path, so imported vouchers obey the same balance, validation and numbering rules.
type importService struct {
	BaseService
	vouchers portssvc.VoucherComposerSvc
	fiscal   portsrepo.FiscalYearReader
}

// NewImportService creates a new ImportSvc.
func NewImportService(vouchers portssvc.VoucherComposerSvc, fiscal portsrepo.FiscalYearReader) portssvc.ImportSvc {
	return &importService{vouchers: vouchers, fiscal: fiscal}
}

var _ portssvc.ImportSvc = (*importService)(nil)

func (s *importService) Import(ctx context.Context, actor domain.Actor, rows []domain.ImportRow, target domain.VoucherStatus) ([]domain.ImportResult, error) {
	if len(rows) == 0 {
		return nil, ErrImportEmpty
	}
	if err := s.Authorize(ctx, actor, domain.PermVoucherWrite); err != nil {
		return nil, err
	}

	order, groups, err := groupImportRows(rows)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ImportResult, 0, len(order))
	saved := 0
	for _, groupID := range order {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := domain.ImportResult{GroupID: groupID}

		draft, err := s.buildDraft(ctx, groupID, groups[groupID])
		if err == nil {
			var v *domain.Voucher
			v, err = s.vouchers.Save(ctx, actor, draft, target)
			if err == nil {
				res.VoucherID = v.VoucherID
				res.VoucherNumber = v.VoucherNumber
				saved++
			}
		}
		if err != nil {
			res.Error = err.Error()
			s.LogDebug(ctx, "Import group rejected", slog.String("group_id", groupID), slog.String("error", err.Error()))
		}
		results = append(results, res)
	}

	s.LogInfo(ctx, "Voucher import finished",
		slog.Int("groups", len(order)),
		slog.Int("saved", saved),
		slog.String("user_id", actor.UserID))
	return results, nil
}

// groupImportRows groups rows by group id, keeping the order groups first appear in.
func groupImportRows(rows []domain.ImportRow) ([]string, map[string][]domain.ImportRow, error) {
	var order []string
	groups := make(map[string][]domain.ImportRow)
	for i, r := range rows {
		id := strings.TrimSpace(r.GroupID)
		if id == "" {
			return nil, nil, apperrors.NewRowError(fmt.Errorf("%w: import group id", apperrors.ErrMissingRequiredField), i+1)
		}
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], r)
	}
	return order, groups, nil
}

func (s *importService) buildDraft(ctx context.Context, groupID string, rows []domain.ImportRow) (domain.Voucher, error) {
	head := rows[0]
	v := domain.Voucher{
		FiscalYearID:     head.FiscalYearID,
		LedgerID:         head.LedgerID,
		BranchID:         head.BranchID,
		VoucherNumber:    head.VoucherNumber,
		SubsidiaryNumber: head.SubsidiaryNumber,
		VoucherDate:      domain.DateOnly(head.VoucherDate),
		DocumentTypeCode: head.DocumentTypeCode,
		Description:      head.HeaderText,
		Status:           domain.StatusDraft,
		ImportGroupID:    groupID,
	}
	if v.FiscalYearID == "" {
		fy, err := s.fiscal.FindFiscalYearByDate(ctx, v.VoucherDate)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return v, fmt.Errorf("failed to find fiscal year: %w", err)
		}
		if fy != nil {
			v.FiscalYearID = fy.FiscalYearID
		}
	}

	for _, r := range rows {
		l := domain.LineItem{
			LineID:         domain.NewTempLineID(),
			AccountID:      r.AccountID,
			Description:    r.Description,
			CurrencyCode:   strings.ToUpper(r.CurrencyCode),
			TrackingNumber: r.TrackingNumber,
			TrackingDate:   r.TrackingDate,
			Quantity:       r.Quantity,
			Details:        r.Details,
		}
		if !r.Debit.IsZero() {
			l.SetDebit(r.Debit)
		} else {
			l.SetCredit(r.Credit)
		}
		for i := range l.Aux {
			l.Aux[i].Rate = r.Rates[i]
			l.Aux[i].Reverse = r.Reverse[i]
		}
		v.Lines = append(v.Lines, l)
	}
	v.Renumber()
	return v, nil
}
