package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		VoucherRepo:  newPgxVoucherRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		AccountRepo:  newPgxAccountRepository(dbPool),
		FiscalRepo:   newPgxFiscalRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
	}
}
