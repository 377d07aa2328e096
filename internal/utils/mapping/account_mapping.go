package mapping

import (
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		StructureID: m.StructureID,
		Code:        m.Code,
		Name:        m.Name,
		ParentID:    m.ParentID.String,
		IsLeaf:      m.IsLeaf,
		IsActive:    m.IsActive,
		Metadata: domain.AccountMetadata{
			TrackingEnabled:   m.Metadata.TrackingEnabled,
			TrackingMandatory: m.Metadata.TrackingMandatory,
			QuantityMandatory: m.Metadata.QuantityMandatory,
			CurrencyEnabled:   m.Metadata.CurrencyEnabled,
			CurrencyMandatory: m.Metadata.CurrencyMandatory,
			DefaultCurrency:   m.Metadata.DefaultCurrency,
			DetailTypes:       m.Metadata.DetailTypes,
		},
	}
}

// ToDomainAccounts converts a slice of model Accounts
func ToDomainAccounts(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}
