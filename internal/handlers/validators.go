package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
)

var registerValidatorsOnce sync.Once

var knownEditOps = map[engine.EditOp]bool{
	engine.OpAddLine: true, engine.OpRemoveLine: true, engine.OpMoveLine: true,
	engine.OpSetAccount: true, engine.OpSetDebit: true, engine.OpSetCredit: true,
	engine.OpSetCurrency: true, engine.OpSetRate: true, engine.OpSetReverse: true,
	engine.OpSetTracking: true, engine.OpSetQuantity: true, engine.OpSetDetail: true,
	engine.OpSetDescription: true, engine.OpSetDate: true, engine.OpSetBranch: true,
	engine.OpSetFiscalYear: true, engine.OpSetLedger: true, engine.OpSetNumber: true,
	engine.OpSetSubsidiary: true, engine.OpSetDocumentType: true, engine.OpSetHeaderText: true,
	engine.OpAutoBalance: true,
}

// registerValidators adds the binding tags used by the voucher DTOs to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("voucher_status", func(fl validator.FieldLevel) bool {
			return domain.VoucherStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("edit_op", func(fl validator.FieldLevel) bool {
			return knownEditOps[engine.EditOp(fl.Field().String())]
		})
		_ = v.RegisterValidation("nonnegative_decimal", func(fl validator.FieldLevel) bool {
			d, ok := fl.Field().Interface().(decimal.Decimal)
			if !ok {
				return false
			}
			return !d.IsNegative()
		})
	})
}
