package models

import "database/sql"

// Account is a row of the accounts table. Metadata is stored as jsonb.
type Account struct {
	AccountID   string          `json:"accountID"`
	StructureID string          `json:"structureID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ParentID    sql.NullString  `json:"parentID"`
	IsLeaf      bool            `json:"isLeaf"`
	IsActive    bool            `json:"isActive"`
	Metadata    AccountMetadata `json:"metadata"`
}

// AccountMetadata is the jsonb document in accounts.metadata.
type AccountMetadata struct {
	TrackingEnabled   bool     `json:"trackingEnabled"`
	TrackingMandatory bool     `json:"trackingMandatory"`
	QuantityMandatory bool     `json:"quantityMandatory"`
	CurrencyEnabled   bool     `json:"currencyEnabled"`
	CurrencyMandatory bool     `json:"currencyMandatory"`
	DefaultCurrency   string   `json:"defaultCurrency"`
	DetailTypes       []string `json:"detailTypes"`
}
