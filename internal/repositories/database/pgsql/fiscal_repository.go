package pgsql

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
)

// fiscalStore reads fiscal years, periods and period exceptions.
type fiscalStore struct {
	db querier
}

// PgxFiscalRepository is the pool-backed fiscal repository.
type PgxFiscalRepository struct {
	*fiscalStore
}

func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepositoryFacade {
	return &PgxFiscalRepository{fiscalStore: &fiscalStore{db: pool}}
}

var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

const fiscalYearColumns = `fiscal_year_id, name, start_date, end_date`

func (s *fiscalStore) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	var fy domain.FiscalYear
	err := s.db.QueryRow(ctx,
		`SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE fiscal_year_id = $1;`,
		fiscalYearID,
	).Scan(&fy.FiscalYearID, &fy.Name, &fy.StartDate, &fy.EndDate)
	if err != nil {
		return nil, mapReadError(err, "fiscal year", fiscalYearID)
	}
	return &fy, nil
}

func (s *fiscalStore) FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	d := domain.DateOnly(date)
	var fy domain.FiscalYear
	err := s.db.QueryRow(ctx, `
		SELECT `+fiscalYearColumns+`
		FROM fiscal_years
		WHERE $1 BETWEEN start_date AND end_date
		ORDER BY start_date
		LIMIT 1;`,
		d,
	).Scan(&fy.FiscalYearID, &fy.Name, &fy.StartDate, &fy.EndDate)
	if err != nil {
		return nil, mapReadError(err, "fiscal year for", d.Format(time.DateOnly))
	}
	return &fy, nil
}

// ListPeriodsByFiscalYear returns the periods of a fiscal year ordered by
// start date, each with its user exceptions.
func (s *fiscalStore) ListPeriodsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	rows, err := s.db.Query(ctx, `
		SELECT period_id, fiscal_year_id, start_date, end_date, status
		FROM fiscal_periods
		WHERE fiscal_year_id = $1
		ORDER BY start_date;`,
		fiscalYearID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query fiscal periods", err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	index := make(map[string]int)
	for rows.Next() {
		var p domain.FiscalPeriod
		var status string
		if err := rows.Scan(&p.PeriodID, &p.FiscalYearID, &p.StartDate, &p.EndDate, &status); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan fiscal period", err)
		}
		p.Status = domain.PeriodStatus(status)
		index[p.PeriodID] = len(periods)
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating fiscal periods", err)
	}
	if len(periods) == 0 {
		return periods, nil
	}

	exRows, err := s.db.Query(ctx, `
		SELECT e.period_id, e.user_id, e.allowed_statuses
		FROM fiscal_period_exceptions e
		JOIN fiscal_periods p ON p.period_id = e.period_id
		WHERE p.fiscal_year_id = $1;`,
		fiscalYearID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query period exceptions", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var periodID, userID string
		var allowed []string
		if err := exRows.Scan(&periodID, &userID, &allowed); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan period exception", err)
		}
		i, ok := index[periodID]
		if !ok {
			continue
		}
		ex := domain.PeriodException{UserID: userID}
		for _, st := range allowed {
			ex.AllowedStatuses = append(ex.AllowedStatuses, domain.PeriodStatus(st))
		}
		periods[i].Exceptions = append(periods[i].Exceptions, ex)
	}
	if err := exRows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating period exceptions", err)
	}
	return periods, nil
}
