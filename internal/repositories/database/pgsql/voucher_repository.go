package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	"github.com/SscSPs/voucher_engine/internal/models"
	"github.com/SscSPs/voucher_engine/internal/utils/mapping"
)

const voucherColumns = `
	voucher_id, fiscal_year_id, ledger_id, branch_id, voucher_number, daily_number, cross_reference,
	subsidiary_number, voucher_date, document_type_code, description, status,
	reviewed_by, reviewed_at, approved_by, approved_at, import_group_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `
	line_id, voucher_id, row_number, account_id, debit, credit, currency_code, description,
	aux, tracking_number, tracking_date, quantity, details`

// voucherStore holds the voucher queries. It runs against the pool for
// plain reads and against a pgx.Tx inside WithinTx.
type voucherStore struct {
	db querier
}

// PgxVoucherRepository is the voucher repository and unit of work.
type PgxVoucherRepository struct {
	BaseRepository
	*voucherStore
}

func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		voucherStore:   &voucherStore{db: pool},
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

// pgxVoucherTx exposes the stores bound to one transaction.
type pgxVoucherTx struct {
	*voucherStore
	*counterStore
	*fiscalStore
}

var _ portsrepo.VoucherTx = (*pgxVoucherTx)(nil)

// WithinTx runs fn in a transaction; any error from fn rolls it back.
func (r *PgxVoucherRepository) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	scoped := &pgxVoucherTx{
		voucherStore: &voucherStore{db: tx},
		counterStore: &counterStore{db: tx},
		fiscalStore:  &fiscalStore{db: tx},
	}
	if err := fn(ctx, scoped); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func scanVoucher(row pgx.Row, m *models.Voucher) error {
	return row.Scan(
		&m.VoucherID,
		&m.FiscalYearID,
		&m.LedgerID,
		&m.BranchID,
		&m.VoucherNumber,
		&m.DailyNumber,
		&m.CrossReference,
		&m.SubsidiaryNumber,
		&m.VoucherDate,
		&m.DocumentTypeCode,
		&m.Description,
		&m.Status,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.ImportGroupID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
}

// FindVoucherByID retrieves a voucher with its lines ordered by row number.
func (s *voucherStore) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	var m models.Voucher
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`
	if err := scanVoucher(s.db.QueryRow(ctx, query, voucherID), &m); err != nil {
		return nil, mapReadError(err, "voucher", voucherID)
	}

	lines, err := s.findLines(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	v := mapping.ToDomainVoucher(m, lines)
	return &v, nil
}

func (s *voucherStore) findLines(ctx context.Context, voucherID string) ([]models.VoucherLine, error) {
	query := `SELECT ` + lineColumns + ` FROM voucher_lines WHERE voucher_id = $1 ORDER BY row_number;`
	rows, err := s.db.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query voucher lines", err)
	}
	defer rows.Close()

	var lines []models.VoucherLine
	for rows.Next() {
		var l models.VoucherLine
		if err := rows.Scan(
			&l.LineID,
			&l.VoucherID,
			&l.RowNumber,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.CurrencyCode,
			&l.Description,
			&l.Aux,
			&l.TrackingNumber,
			&l.TrackingDate,
			&l.Quantity,
			&l.Details,
		); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan voucher line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating voucher lines", err)
	}
	return lines, nil
}

func (s *voucherStore) MaxDailyNumber(ctx context.Context, date time.Time) (int64, error) {
	var last int64
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(daily_number), 0) FROM vouchers WHERE voucher_date = $1;`,
		domain.DateOnly(date),
	).Scan(&last)
	if err != nil {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to read daily numbers", err)
	}
	return last, nil
}

func (s *voucherStore) MaxCrossReference(ctx context.Context, ledgerID, fiscalYearID string) (int64, error) {
	var last int64
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(cross_reference), 0) FROM vouchers WHERE ledger_id = $1 AND fiscal_year_id = $2;`,
		ledgerID, fiscalYearID,
	).Scan(&last)
	if err != nil {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to read cross references", err)
	}
	return last, nil
}

func (s *voucherStore) SubsidiaryNumberExists(ctx context.Context, fiscalYearID, number, excludeVoucherID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM vouchers
			WHERE fiscal_year_id = $1 AND subsidiary_number = $2 AND voucher_id <> $3
		);`,
		fiscalYearID, number, excludeVoucherID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to check subsidiary number", err)
	}
	return exists, nil
}

func (s *voucherStore) InsertVoucher(ctx context.Context, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	query := `INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);`
	_, err := s.db.Exec(ctx, query,
		m.VoucherID,
		m.FiscalYearID,
		m.LedgerID,
		m.BranchID,
		m.VoucherNumber,
		m.DailyNumber,
		m.CrossReference,
		m.SubsidiaryNumber,
		m.VoucherDate,
		m.DocumentTypeCode,
		m.Description,
		m.Status,
		m.ReviewedBy,
		m.ReviewedAt,
		m.ApprovedBy,
		m.ApprovedAt,
		m.ImportGroupID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert voucher "+m.VoucherID)
	}
	return nil
}

// UpdateVoucher rewrites the editable header columns. Cross-reference,
// creation audit and review stamps are not touched.
func (s *voucherStore) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	tag, err := s.db.Exec(ctx, `
		UPDATE vouchers SET
			fiscal_year_id = $2, ledger_id = $3, branch_id = $4, voucher_number = $5, daily_number = $6,
			subsidiary_number = $7, voucher_date = $8, document_type_code = $9, description = $10,
			status = $11, last_updated_at = $12, last_updated_by = $13
		WHERE voucher_id = $1;`,
		m.VoucherID,
		m.FiscalYearID,
		m.LedgerID,
		m.BranchID,
		m.VoucherNumber,
		m.DailyNumber,
		m.SubsidiaryNumber,
		m.VoucherDate,
		m.DocumentTypeCode,
		m.Description,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to update voucher "+m.VoucherID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s: %w", m.VoucherID, apperrors.ErrNotFound)
	}
	return nil
}

// ReplaceLines deletes the stored lines of a voucher and inserts lines in one batch.
func (s *voucherStore) ReplaceLines(ctx context.Context, voucherID string, lines []domain.LineItem) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM voucher_lines WHERE voucher_id = $1;`, voucherID); err != nil {
		return mapWriteError(err, "failed to clear lines of voucher "+voucherID)
	}
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO voucher_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	for _, line := range lines {
		l := mapping.ToModelVoucherLine(voucherID, line)
		batch.Queue(query,
			l.LineID,
			l.VoucherID,
			l.RowNumber,
			l.AccountID,
			l.Debit,
			l.Credit,
			l.CurrencyCode,
			l.Description,
			l.Aux,
			l.TrackingNumber,
			l.TrackingDate,
			l.Quantity,
			l.Details,
		)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "failed to insert lines of voucher "+voucherID)
	}
	return nil
}

func (s *voucherStore) UpdateVoucherStatus(ctx context.Context, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	tag, err := s.db.Exec(ctx, `
		UPDATE vouchers SET
			status = $2, reviewed_by = $3, reviewed_at = $4, approved_by = $5, approved_at = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE voucher_id = $1;`,
		m.VoucherID,
		m.Status,
		m.ReviewedBy,
		m.ReviewedAt,
		m.ApprovedBy,
		m.ApprovedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to update status of voucher "+m.VoucherID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s: %w", m.VoucherID, apperrors.ErrNotFound)
	}
	return nil
}
