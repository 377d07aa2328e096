package mapping

import (
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/models"
)

// ToDomainLedger converts a model Ledger and its counters to a domain Ledger
func ToDomainLedger(m models.Ledger, counters []models.LedgerCounter) domain.Ledger {
	l := domain.Ledger{
		LedgerID:        m.LedgerID,
		Name:            m.Name,
		CurrencyCode:    m.CurrencyCode,
		StructureID:     m.StructureID,
		DefaultBranchID: m.DefaultBranchID,
		Numbering: domain.NumberingConfig{
			Scope:     domain.NumberingScope(m.NumberingScope),
			ResetYear: m.NumberingResetYear,
			Counters:  make(map[domain.CounterKey]int64, len(counters)),
		},
	}
	for _, c := range counters {
		l.Numbering.Counters[ToDomainCounterKey(c)] = c.LastIssued
	}
	return l
}

// ToDomainCounterKey extracts the counter key of a LedgerCounter row
func ToDomainCounterKey(m models.LedgerCounter) domain.CounterKey {
	return domain.CounterKey{FiscalYearID: m.FiscalYearID, BranchID: m.BranchID}
}
