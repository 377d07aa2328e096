package pgsql

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	"github.com/SscSPs/voucher_engine/internal/models"
	"github.com/SscSPs/voucher_engine/internal/utils/mapping"
)

// PgxLedgerRepository reads ledgers, their numbering counters and branches.
type PgxLedgerRepository struct {
	db querier
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{db: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	var m models.Ledger
	err := r.db.QueryRow(ctx, `
		SELECT ledger_id, name, currency_code, structure_id, default_branch_id, numbering_scope, numbering_reset_year
		FROM ledgers
		WHERE ledger_id = $1;`,
		ledgerID,
	).Scan(&m.LedgerID, &m.Name, &m.CurrencyCode, &m.StructureID, &m.DefaultBranchID, &m.NumberingScope, &m.NumberingResetYear)
	if err != nil {
		return nil, mapReadError(err, "ledger", ledgerID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT ledger_id, fiscal_year_id, branch_id, last_issued
		FROM ledger_voucher_counters
		WHERE ledger_id = $1;`,
		ledgerID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query ledger counters", err)
	}
	defer rows.Close()

	var counters []models.LedgerCounter
	for rows.Next() {
		var c models.LedgerCounter
		if err := rows.Scan(&c.LedgerID, &c.FiscalYearID, &c.BranchID, &c.LastIssued); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan ledger counter", err)
		}
		counters = append(counters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating ledger counters", err)
	}

	ledger := mapping.ToDomainLedger(m, counters)
	return &ledger, nil
}

func (r *PgxLedgerRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	var b domain.Branch
	err := r.db.QueryRow(ctx, `SELECT branch_id, name FROM branches WHERE branch_id = $1;`, branchID).Scan(&b.BranchID, &b.Name)
	if err != nil {
		return nil, mapReadError(err, "branch", branchID)
	}
	return &b, nil
}

// counterStore issues voucher numbers inside the save transaction.
type counterStore struct {
	db querier
}

// IncrementCounter bumps one counter row, creating it at 1 on first use. The
// row lock taken by the upsert serialises concurrent issuers until commit.
func (s *counterStore) IncrementCounter(ctx context.Context, ledgerID string, key domain.CounterKey) (int64, error) {
	var issued int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO ledger_voucher_counters (ledger_id, fiscal_year_id, branch_id, last_issued)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (ledger_id, fiscal_year_id, branch_id)
		DO UPDATE SET last_issued = ledger_voucher_counters.last_issued + 1
		RETURNING last_issued;`,
		ledgerID, key.FiscalYearID, key.BranchID,
	).Scan(&issued)
	if err != nil {
		return 0, mapWriteError(err, "failed to increment counter "+key.String())
	}
	return issued, nil
}
