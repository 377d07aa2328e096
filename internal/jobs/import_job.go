package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
)

// ImportJob processes queued voucher imports.
type ImportJob struct {
	imports portssvc.ImportSvc
	logger  *slog.Logger
}

// NewImportJob constructs an ImportJob handler.
func NewImportJob(imports portssvc.ImportSvc, logger *slog.Logger) *ImportJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportJob{imports: imports, logger: logger}
}

// Handle fulfils the asynq.HandlerFunc contract. Errors the input caused are
// not retried; per-group failures are logged and do not fail the task.
func (j *ImportJob) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode import payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With(
		slog.String("task_type", task.Type()),
		slog.String("user_id", payload.Actor.UserID),
		slog.Int("rows", len(payload.Rows)),
	)

	results, err := j.imports.Import(ctx, payload.Actor, payload.Rows, payload.Target)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Import rejected", slog.String("error", err.Error()))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		logger.Error("Import failed", slog.String("error", err.Error()))
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			logger.Warn("Import group failed", slog.String("group_id", r.GroupID), slog.String("error", r.Error))
		}
	}
	logger.Info("Import finished", slog.Int("groups", len(results)), slog.Int("failed", failed))
	return nil
}
