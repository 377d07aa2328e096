package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/engine"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
)

// periodGateService evaluates the fiscal period rule. Periods are read on every
// call because their status and exceptions can change between load and save.
type periodGateService struct {
	BaseService
	periods portsrepo.PeriodReader
}

// NewPeriodGateService creates a new PeriodGateSvc.
func NewPeriodGateService(periods portsrepo.PeriodReader) portssvc.PeriodGateSvc {
	return &periodGateService{periods: periods}
}

var _ portssvc.PeriodGateSvc = (*periodGateService)(nil)

func (s *periodGateService) Validate(ctx context.Context, date time.Time, fiscalYearID, userID string) error {
	return s.ValidateInTx(ctx, s.periods, date, fiscalYearID, userID)
}

func (s *periodGateService) ValidateInTx(ctx context.Context, tx portsrepo.PeriodReader, date time.Time, fiscalYearID, userID string) error {
	periods, err := tx.ListPeriodsByFiscalYear(ctx, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load fiscal periods", slog.String("fiscal_year_id", fiscalYearID))
		return fmt.Errorf("failed to load fiscal periods: %w", err)
	}
	if err := engine.EvaluatePeriodGate(periods, date, userID); err != nil {
		s.LogDebug(ctx, "Fiscal period gate rejected date",
			slog.String("fiscal_year_id", fiscalYearID),
			slog.Time("date", date),
			slog.String("user_id", userID),
			slog.String("reason", err.Error()))
		return err
	}
	return nil
}
