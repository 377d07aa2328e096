package repositories

import (
	"context"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// LedgerReader defines read operations for ledgers and branches.
type LedgerReader interface {
	// FindLedgerByID returns the ledger including its numbering counters.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
}

// CounterWriter issues voucher numbers from ledger counters.
type CounterWriter interface {
	// IncrementCounter atomically bumps the counter under key and returns the
	// new value. A missing counter starts at 1.
	IncrementCounter(ctx context.Context, ledgerID string, key domain.CounterKey) (int64, error)
}

// LedgerRepositoryFacade combines ledger reads.
type LedgerRepositoryFacade interface {
	LedgerReader
}
