package pgsql

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
)

// PgxSettingsRepository reads currencies, document types and the auxiliary
// currency designations.
type PgxSettingsRepository struct {
	db querier
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{db: pool}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) AuxiliaryCurrencies(ctx context.Context) (domain.AuxiliaryCurrencies, error) {
	var aux domain.AuxiliaryCurrencies
	rows, err := r.db.Query(ctx, `SELECT slot, currency_code FROM auxiliary_currencies ORDER BY slot;`)
	if err != nil {
		return aux, apperrors.NewAppError(http.StatusInternalServerError, "failed to query auxiliary currencies", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot int
		var code string
		if err := rows.Scan(&slot, &code); err != nil {
			return aux, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan auxiliary currency", err)
		}
		if domain.AuxSlot(slot).Valid() {
			aux[slot] = code
		}
	}
	if err := rows.Err(); err != nil {
		return aux, apperrors.NewAppError(http.StatusInternalServerError, "error iterating auxiliary currencies", err)
	}
	return aux, nil
}

func (r *PgxSettingsRepository) CurrencyExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM currencies WHERE currency_code = $1);`, code)
}

func (r *PgxSettingsRepository) DocumentTypeExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM document_types WHERE code = $1);`, code)
}

func (r *PgxSettingsRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to check lookup", err)
	}
	return ok, nil
}
