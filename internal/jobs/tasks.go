package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// TaskTypeVoucherImport is the task type for bulk voucher imports.
const TaskTypeVoucherImport = "voucher:import"

// ImportPayload carries everything an import needs; the worker never looks
// the acting user up on its own.
type ImportPayload struct {
	Actor  domain.Actor         `json:"actor"`
	Rows   []domain.ImportRow   `json:"rows"`
	Target domain.VoucherStatus `json:"target"`
}

// NewImportTask constructs an Asynq task.
func NewImportTask(payload ImportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode import payload: %w", err)
	}
	return asynq.NewTask(TaskTypeVoucherImport, data), nil
}
