package engine

import (
	"fmt"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// Capabilities lists the optional line features an account switches on.
type Capabilities struct {
	TrackingRequired    bool
	TrackingMandatory   bool
	QuantityMandatory   bool
	CurrencyOverride    bool
	CurrencyMandatory   bool
	DefaultCurrency     string
	RequiredDetailTypes []domain.DetailType
}

// CapabilityResolver maps account ids to capabilities, resolving each account once.
type CapabilityResolver struct {
	accounts    map[string]domain.Account
	detailTypes []domain.DetailType
	structureID string
	cache       map[string]Capabilities
}

// NewCapabilityResolver builds a resolver over the given chart entries.
// When structureID is set, accounts from other structures are rejected.
func NewCapabilityResolver(accounts map[string]domain.Account, detailTypes []domain.DetailType, structureID string) *CapabilityResolver {
	if accounts == nil {
		accounts = map[string]domain.Account{}
	}
	return &CapabilityResolver{
		accounts:    accounts,
		detailTypes: detailTypes,
		structureID: structureID,
		cache:       make(map[string]Capabilities),
	}
}

// Account returns the chart entry for id.
func (r *CapabilityResolver) Account(id string) (domain.Account, bool) {
	acc, ok := r.accounts[id]
	return acc, ok
}

// AddAccount registers or replaces an account and drops its cached capabilities.
func (r *CapabilityResolver) AddAccount(acc domain.Account) {
	r.accounts[acc.AccountID] = acc
	delete(r.cache, acc.AccountID)
}

// Resolve returns the capabilities of accountID.
func (r *CapabilityResolver) Resolve(accountID string) (Capabilities, error) {
	if caps, ok := r.cache[accountID]; ok {
		return caps, nil
	}
	acc, ok := r.accounts[accountID]
	if !ok {
		return Capabilities{}, fmt.Errorf("%w: account %s not found", apperrors.ErrInvalidAccount, accountID)
	}
	if !acc.IsLeaf {
		return Capabilities{}, fmt.Errorf("%w: account %s is not a subsidiary account", apperrors.ErrInvalidAccount, accountID)
	}
	if !acc.IsActive {
		return Capabilities{}, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidAccount, accountID)
	}
	if r.structureID != "" && acc.StructureID != r.structureID {
		return Capabilities{}, fmt.Errorf("%w: account %s belongs to another account structure", apperrors.ErrInvalidAccount, accountID)
	}

	md := acc.Metadata
	caps := Capabilities{
		TrackingRequired:  md.TrackingEnabled || md.TrackingMandatory,
		TrackingMandatory: md.TrackingMandatory,
		QuantityMandatory: md.QuantityMandatory,
		CurrencyOverride:  md.CurrencyEnabled,
		CurrencyMandatory: md.CurrencyMandatory,
		DefaultCurrency:   md.DefaultCurrency,
	}
	if len(md.DetailTypes) > 0 {
		allowed := make(map[string]bool, len(md.DetailTypes))
		for _, v := range md.DetailTypes {
			allowed[v] = true
		}
		for _, dt := range r.detailTypes {
			if allowed[dt.Code] || allowed[dt.DetailTypeID] {
				caps.RequiredDetailTypes = append(caps.RequiredDetailTypes, dt)
			}
		}
	}
	r.cache[accountID] = caps
	return caps, nil
}
