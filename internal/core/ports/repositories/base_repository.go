package repositories

import (
	"context"
)

// TxFunc runs inside one database transaction. Returning an error rolls the
// transaction back.
type TxFunc func(ctx context.Context, tx VoucherTx) error

// UnitOfWork runs a function inside a single database transaction so that the
// voucher header, its lines and the ledger counters commit together.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// VoucherTx is the set of operations available inside a save transaction.
type VoucherTx interface {
	VoucherReader
	VoucherWriter
	CounterWriter
	PeriodReader
}
