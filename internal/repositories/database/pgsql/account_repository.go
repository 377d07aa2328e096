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

// PgxAccountRepository reads the chart of accounts and detail types.
type PgxAccountRepository struct {
	db querier
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{db: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) ListAccountsByStructure(ctx context.Context, structureID string) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT account_id, structure_id, code, name, parent_id, is_leaf, is_active, metadata
		FROM accounts
		WHERE structure_id = $1
		ORDER BY code;`,
		structureID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query accounts", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.AccountID, &m.StructureID, &m.Code, &m.Name, &m.ParentID, &m.IsLeaf, &m.IsActive, &m.Metadata); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan account", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating accounts", err)
	}
	return mapping.ToDomainAccounts(accounts), nil
}

func (r *PgxAccountRepository) ListDetailTypes(ctx context.Context) ([]domain.DetailType, error) {
	rows, err := r.db.Query(ctx, `SELECT detail_type_id, code, name FROM detail_types ORDER BY code;`)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query detail types", err)
	}
	defer rows.Close()

	var types []domain.DetailType
	for rows.Next() {
		var dt domain.DetailType
		if err := rows.Scan(&dt.DetailTypeID, &dt.Code, &dt.Name); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan detail type", err)
		}
		types = append(types, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating detail types", err)
	}
	return types, nil
}
