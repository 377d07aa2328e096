package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
)

// NewDraftRequest starts composing a voucher.
type NewDraftRequest struct {
	LedgerID string `json:"ledgerID" binding:"required"`
	BranchID string `json:"branchID"`
}

// EditRequest is one user edit replayed on a draft.
type EditRequest struct {
	Op         string           `json:"op" binding:"required,edit_op"`
	Row        int              `json:"row" binding:"min=0"`
	ToRow      int              `json:"toRow" binding:"min=0"`
	Value      string           `json:"value"`
	Amount     *decimal.Decimal `json:"amount" swaggertype:"string" binding:"omitempty,nonnegative_decimal"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty" swaggertype:"string"`
	Slot       int              `json:"slot" binding:"min=0,max=2"`
	Flag       bool             `json:"flag"`
	Date       *time.Time       `json:"date,omitempty"`
	DetailType string           `json:"detailType"`
}

// ToEdit converts the request into an engine edit.
func (r EditRequest) ToEdit() engine.Edit {
	e := engine.Edit{
		Op:         engine.EditOp(r.Op),
		Row:        r.Row,
		ToRow:      r.ToRow,
		Value:      r.Value,
		Quantity:   r.Quantity,
		Slot:       domain.AuxSlot(r.Slot),
		Flag:       r.Flag,
		Date:       r.Date,
		DetailType: r.DetailType,
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	return e
}

// ApplyEditsRequest carries the draft as the client holds it plus the edits to replay.
type ApplyEditsRequest struct {
	Voucher domain.Voucher `json:"voucher"`
	Edits   []EditRequest  `json:"edits" binding:"required,min=1,dive"`
}

// ToEdits converts every edit of the request.
func (r ApplyEditsRequest) ToEdits() []engine.Edit {
	edits := make([]engine.Edit, len(r.Edits))
	for i, e := range r.Edits {
		edits[i] = e.ToEdit()
	}
	return edits
}

// AutoBalanceRequest asks the engine to add or adjust the balancing row.
type AutoBalanceRequest struct {
	Voucher domain.Voucher `json:"voucher"`
}

// SaveVoucherRequest persists a draft with the requested status.
type SaveVoucherRequest struct {
	Voucher domain.Voucher `json:"voucher"`
	Status  string         `json:"status" binding:"required,voucher_status"`
}

// ViolationResponse describes one rule the voucher currently breaks.
type ViolationResponse struct {
	Row        int    `json:"row,omitempty"`
	DetailType string `json:"detailType,omitempty"`
	Message    string `json:"message"`
}

// DraftResponse is the voucher under composition with its derived state.
type DraftResponse struct {
	Voucher    domain.Voucher      `json:"voucher"`
	Totals     engine.Totals       `json:"totals"`
	Balanced   bool                `json:"balanced"`
	Violations []ViolationResponse `json:"violations"`
}

// ToViolationResponse converts an engine violation.
func ToViolationResponse(err error) ViolationResponse {
	var rowErr *apperrors.RowError
	if errors.As(err, &rowErr) {
		return ViolationResponse{Row: rowErr.Row, DetailType: rowErr.DetailType, Message: rowErr.Err.Error()}
	}
	return ViolationResponse{Message: err.Error()}
}

// ToDraftResponse converts a service draft view.
func ToDraftResponse(v *portssvc.DraftView) DraftResponse {
	violations := make([]ViolationResponse, len(v.Violations))
	for i, err := range v.Violations {
		violations[i] = ToViolationResponse(err)
	}
	return DraftResponse{
		Voucher:    v.Voucher,
		Totals:     v.Totals,
		Balanced:   v.Totals.IsBalanced(),
		Violations: violations,
	}
}

// VoucherResponse is a persisted voucher with its totals.
type VoucherResponse struct {
	Voucher domain.Voucher `json:"voucher"`
	Totals  engine.Totals  `json:"totals"`
}

// ToVoucherResponse converts a saved voucher.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{Voucher: *v, Totals: engine.ComputeTotals(v.Lines)}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error      string `json:"error"`
	Row        int    `json:"row,omitempty"`
	DetailType string `json:"detailType,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
