package repositories

import (
	"context"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	// ListAccountsByStructure returns every account of an account structure with its metadata.
	ListAccountsByStructure(ctx context.Context, structureID string) ([]domain.Account, error)
}

// DetailTypeReader defines read operations for detail dimensions.
type DetailTypeReader interface {
	ListDetailTypes(ctx context.Context) ([]domain.DetailType, error)
}

// AccountRepositoryFacade combines the chart-of-accounts lookups.
type AccountRepositoryFacade interface {
	AccountReader
	DetailTypeReader
}
