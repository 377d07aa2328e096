package services

import (
	"context"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// ImportSvc turns grouped import rows into saved vouchers.
type ImportSvc interface {
	// Import saves one voucher per import group. A failing group does not stop the others.
	Import(ctx context.Context, actor domain.Actor, rows []domain.ImportRow, target domain.VoucherStatus) ([]domain.ImportResult, error)
}
