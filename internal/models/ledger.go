package models

// Ledger is a row of the ledgers table.
type Ledger struct {
	LedgerID           string `json:"ledgerID"`
	Name               string `json:"name"`
	CurrencyCode       string `json:"currencyCode"`
	StructureID        string `json:"structureID"`
	DefaultBranchID    string `json:"defaultBranchID"`
	NumberingScope     string `json:"numberingScope"`
	NumberingResetYear bool   `json:"numberingResetYear"`
}

// LedgerCounter is a row of ledger_voucher_counters. Empty key columns mean
// the counter is not split by that dimension.
type LedgerCounter struct {
	LedgerID     string `json:"ledgerID"`
	FiscalYearID string `json:"fiscalYearID"`
	BranchID     string `json:"branchID"`
	LastIssued   int64  `json:"lastIssued"`
}
