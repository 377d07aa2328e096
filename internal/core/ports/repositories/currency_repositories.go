package repositories

import (
	"context"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// SettingsReader defines read operations for global voucher settings.
type SettingsReader interface {
	// AuxiliaryCurrencies returns the three configured auxiliary currency codes.
	AuxiliaryCurrencies(ctx context.Context) (domain.AuxiliaryCurrencies, error)

	// CurrencyExists reports whether code is a known currency.
	CurrencyExists(ctx context.Context, code string) (bool, error)

	// DocumentTypeExists reports whether code is a known document type.
	DocumentTypeExists(ctx context.Context, code string) (bool, error)
}

// SettingsRepositoryFacade combines settings lookups.
type SettingsRepositoryFacade interface {
	SettingsReader
}
