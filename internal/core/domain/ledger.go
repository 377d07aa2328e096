package domain

// NumberingScope selects how voucher numbers are made unique.
type NumberingScope string

const (
	ScopeNone    NumberingScope = "none"
	ScopeLedger  NumberingScope = "ledger"
	ScopeBranch  NumberingScope = "branch"
	ScopeCompany NumberingScope = "company"
)

// CounterKey addresses one last-issued counter. Empty fields mean the counter
// is not split by that dimension.
type CounterKey struct {
	FiscalYearID string `json:"fiscalYearID,omitempty"`
	BranchID     string `json:"branchID,omitempty"`
}

// String renders the key the way it is stored.
func (k CounterKey) String() string {
	switch {
	case k.FiscalYearID != "" && k.BranchID != "":
		return "fy:" + k.FiscalYearID + "/branch:" + k.BranchID
	case k.FiscalYearID != "":
		return "fy:" + k.FiscalYearID
	case k.BranchID != "":
		return "branch:" + k.BranchID
	}
	return "global"
}

// NumberingConfig is the ledger-owned voucher numbering policy.
type NumberingConfig struct {
	Scope     NumberingScope       `json:"scope"`
	ResetYear bool                 `json:"resetYear"`
	Counters  map[CounterKey]int64 `json:"-"`
}

// LastIssued returns the last number issued under key, or zero.
func (c NumberingConfig) LastIssued(key CounterKey) int64 {
	if c.Counters == nil {
		return 0
	}
	return c.Counters[key]
}

// Ledger owns its base currency, account structure and numbering policy.
type Ledger struct {
	LedgerID        string          `json:"ledgerID"`
	Name            string          `json:"name"`
	CurrencyCode    string          `json:"currencyCode"`
	StructureID     string          `json:"structureID"`
	DefaultBranchID string          `json:"defaultBranchID"`
	Numbering       NumberingConfig `json:"numbering"`
}

// Branch is an organisational unit that may scope voucher numbers.
type Branch struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
}
