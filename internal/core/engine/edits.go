package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// EditOp names a single user edit.
type EditOp string

const (
	OpAddLine         EditOp = "add_line"
	OpRemoveLine      EditOp = "remove_line"
	OpMoveLine        EditOp = "move_line"
	OpSetAccount      EditOp = "set_account"
	OpSetDebit        EditOp = "set_debit"
	OpSetCredit       EditOp = "set_credit"
	OpSetCurrency     EditOp = "set_currency"
	OpSetRate         EditOp = "set_rate"
	OpSetReverse      EditOp = "set_reverse"
	OpSetTracking     EditOp = "set_tracking"
	OpSetQuantity     EditOp = "set_quantity"
	OpSetDetail       EditOp = "set_detail"
	OpSetDescription  EditOp = "set_description"
	OpSetDate         EditOp = "set_date"
	OpSetBranch       EditOp = "set_branch"
	OpSetFiscalYear   EditOp = "set_fiscal_year"
	OpSetLedger       EditOp = "set_ledger"
	OpSetNumber       EditOp = "set_voucher_number"
	OpSetSubsidiary   EditOp = "set_subsidiary_number"
	OpSetDocumentType EditOp = "set_document_type"
	OpSetHeaderText   EditOp = "set_header_description"
	OpAutoBalance     EditOp = "auto_balance"
)

// Edit is one recorded mutation. Only the fields its Op reads are used.
type Edit struct {
	Op         EditOp
	Row        int
	ToRow      int
	Value      string
	Amount     decimal.Decimal
	Quantity   *decimal.Decimal
	Slot       domain.AuxSlot
	Flag       bool
	Date       *time.Time
	DetailType string
}

// Apply replays e on the session. OpSetLedger needs the ledger lookup that
// only the caller has, so it is rejected here; callers handle it with SetLedger.
func (s *Session) Apply(e Edit) error {
	switch e.Op {
	case OpAddLine:
		_, err := s.AddLine()
		return err
	case OpRemoveLine:
		return s.RemoveLine(e.Row)
	case OpMoveLine:
		return s.MoveLine(e.Row, e.ToRow)
	case OpSetAccount:
		return s.SetAccount(e.Row, e.Value)
	case OpSetDebit:
		return s.SetDebit(e.Row, e.Amount)
	case OpSetCredit:
		return s.SetCredit(e.Row, e.Amount)
	case OpSetCurrency:
		return s.SetCurrency(e.Row, e.Value)
	case OpSetRate:
		return s.SetRate(e.Row, e.Slot, e.Amount)
	case OpSetReverse:
		return s.SetReverse(e.Row, e.Slot, e.Flag)
	case OpSetTracking:
		return s.SetTracking(e.Row, e.Value, e.Date)
	case OpSetQuantity:
		return s.SetQuantity(e.Row, e.Quantity)
	case OpSetDetail:
		return s.SetDetail(e.Row, e.DetailType, e.Value)
	case OpSetDescription:
		return s.SetDescription(e.Row, e.Value)
	case OpSetDate:
		if e.Date == nil {
			return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
		}
		return s.SetDate(*e.Date)
	case OpSetBranch:
		return s.SetBranch(e.Value)
	case OpSetFiscalYear:
		return s.SetFiscalYear(e.Value)
	case OpSetNumber:
		return s.SetVoucherNumber(e.Value)
	case OpSetSubsidiary:
		return s.SetSubsidiaryNumber(e.Value)
	case OpSetDocumentType:
		return s.SetDocumentType(e.Value)
	case OpSetHeaderText:
		return s.SetHeaderDescription(e.Value)
	case OpAutoBalance:
		_, err := s.AutoBalance()
		return err
	}
	return fmt.Errorf("%w: unsupported edit %q", apperrors.ErrValidation, e.Op)
}
