package engine_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
)

const testStructure = "chart-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func testDetailTypes() []domain.DetailType {
	return []domain.DetailType{
		{DetailTypeID: "dt-1", Code: "CC", Name: "Cost center"},
		{DetailTypeID: "dt-2", Code: "PRJ", Name: "Project"},
	}
}

func testAccounts() map[string]domain.Account {
	leaf := func(id string, md domain.AccountMetadata) domain.Account {
		return domain.Account{AccountID: id, StructureID: testStructure, Code: id, Name: id, IsLeaf: true, IsActive: true, Metadata: md}
	}
	return map[string]domain.Account{
		"A":        leaf("A", domain.AccountMetadata{}),
		"B":        leaf("B", domain.AccountMetadata{}),
		"TRACK":    leaf("TRACK", domain.AccountMetadata{TrackingEnabled: true, TrackingMandatory: true}),
		"QTY":      leaf("QTY", domain.AccountMetadata{QuantityMandatory: true}),
		"FX":       leaf("FX", domain.AccountMetadata{CurrencyEnabled: true, CurrencyMandatory: true, DefaultCurrency: "USD"}),
		"DETAIL":   leaf("DETAIL", domain.AccountMetadata{DetailTypes: []string{"CC", "dt-2"}}),
		"PARENT":   {AccountID: "PARENT", StructureID: testStructure, IsLeaf: false, IsActive: true},
		"INACTIVE": {AccountID: "INACTIVE", StructureID: testStructure, IsLeaf: true, IsActive: false},
		"FOREIGN":  {AccountID: "FOREIGN", StructureID: "chart-2", IsLeaf: true, IsActive: true},
	}
}

func newResolver() *engine.CapabilityResolver {
	return engine.NewCapabilityResolver(testAccounts(), testDetailTypes(), testStructure)
}

func testLedger() domain.Ledger {
	return domain.Ledger{
		LedgerID:        "L1",
		Name:            "Main",
		CurrencyCode:    "IRR",
		StructureID:     testStructure,
		DefaultBranchID: "BR-1",
		Numbering:       domain.NumberingConfig{Scope: domain.ScopeLedger, ResetYear: true},
	}
}

func testAux() domain.AuxiliaryCurrencies {
	return domain.AuxiliaryCurrencies{"USD", "EUR", "AED"}
}

func openPeriods() []domain.FiscalPeriod {
	return []domain.FiscalPeriod{{
		PeriodID:     "P1",
		FiscalYearID: "FY1",
		StartDate:    day(2024, 1, 1),
		EndDate:      day(2030, 12, 31),
		Status:       domain.PeriodOpen,
	}}
}

func line(account, desc string, debit, credit string) domain.LineItem {
	l := domain.LineItem{LineID: domain.NewTempLineID(), AccountID: account, Description: desc, CurrencyCode: "IRR"}
	if debit != "" {
		l.Debit = d(debit)
	}
	if credit != "" {
		l.Credit = d(credit)
	}
	return l
}
