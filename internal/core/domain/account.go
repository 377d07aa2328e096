package domain

// Account is a chart-of-accounts node as the voucher engine sees it.
type Account struct {
	AccountID   string          `json:"accountID"`
	StructureID string          `json:"structureID"` // chart structure the account belongs to
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ParentID    string          `json:"parentID"`
	IsLeaf      bool            `json:"isLeaf"` // only subsidiary-level accounts take voucher lines
	IsActive    bool            `json:"isActive"`
	Metadata    AccountMetadata `json:"metadata"`
}

// AccountMetadata is the per-account attribute bag that drives line requirements.
type AccountMetadata struct {
	TrackingEnabled   bool   `json:"trackingEnabled"`
	TrackingMandatory bool   `json:"trackingMandatory"`
	QuantityMandatory bool   `json:"quantityMandatory"`
	CurrencyEnabled   bool   `json:"currencyEnabled"`
	CurrencyMandatory bool   `json:"currencyMandatory"`
	DefaultCurrency   string `json:"defaultCurrency"`
	// DetailTypes lists detail-type codes or ids that apply to this account.
	DetailTypes []string `json:"detailTypes"`
}

// DetailType is a configured detail dimension (cost center, project, person...).
type DetailType struct {
	DetailTypeID string `json:"detailTypeID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
}
