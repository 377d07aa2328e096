package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/SscSPs/voucher_engine/internal/middleware"
)

// respondError maps a service error to an HTTP status and writes it. action
// names the failed operation in logs and in the message of unexpected errors.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	body := dto.ErrorResponse{Error: err.Error()}

	var rowErr *apperrors.RowError
	if errors.As(err, &rowErr) {
		body.Row = rowErr.Row
		body.DetailType = rowErr.DetailType
	}
	var periodErr *apperrors.PeriodRejectedError
	if errors.As(err, &periodErr) {
		body.Reason = string(periodErr.Reason)
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrSequenceConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict while trying to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error while trying to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found while trying to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, body)
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden while trying to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, body)
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		logger.Warn("Client error while trying to "+action, slog.String("error", err.Error()))
		c.JSON(appErr.Code, body)
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + action})
	}
}

// requireActor returns the authenticated actor or writes 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
