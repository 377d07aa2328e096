package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
)

// querier is the subset of pgx shared by the pool and a transaction, so the
// same store code runs inside and outside WithinTx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)
)

// Unique constraints on vouchers. Daily and cross-reference violations mean a
// concurrent save won the number.
const (
	constraintDailyNumber    = "vouchers_daily_number_key"
	constraintCrossReference = "vouchers_cross_reference_key"
	constraintSubsidiary     = "vouchers_subsidiary_number_key"
	constraintVoucherNumber  = "vouchers_voucher_number_key"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return mapWriteError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// mapWriteError turns driver errors into the sentinels the services branch on.
func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgSerializationFailure {
			return fmt.Errorf("%s: %w", msg, apperrors.ErrSequenceConflict)
		}
		if pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case constraintDailyNumber, constraintCrossReference:
				return fmt.Errorf("%s: %w", msg, apperrors.ErrSequenceConflict)
			case constraintSubsidiary:
				return apperrors.ErrSubsidiaryNumberDuplicate
			case constraintVoucherNumber:
				return fmt.Errorf("%s: %w", msg, apperrors.ErrVoucherNumberDuplicate)
			}
			return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

// mapReadError maps a missing row to ErrNotFound.
func mapReadError(err error, what, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, apperrors.ErrNotFound)
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "failed to load "+what+" "+id, err)
}
