package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// PeriodReader loads fiscal periods with their per-user exceptions.
type PeriodReader interface {
	ListPeriodsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error)
}

// FiscalYearReader defines read operations for fiscal years.
type FiscalYearReader interface {
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearByDate returns the fiscal year whose range contains date.
	FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)
}

// FiscalRepositoryFacade combines fiscal year and period lookups.
type FiscalRepositoryFacade interface {
	FiscalYearReader
	PeriodReader
}
