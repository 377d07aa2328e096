package engine

import (
	"time"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// EvaluatePeriodGate decides whether userID may write a voucher dated date
// into the fiscal year whose periods are given. It returns nil or a
// *apperrors.PeriodRejectedError.
func EvaluatePeriodGate(periods []domain.FiscalPeriod, date time.Time, userID string) error {
	if len(periods) == 0 {
		return &apperrors.PeriodRejectedError{Reason: apperrors.NoPeriodsDefined}
	}

	var match *domain.FiscalPeriod
	for i := range periods {
		if periods[i].Contains(date) {
			match = &periods[i]
			break
		}
	}
	if match == nil {
		return &apperrors.PeriodRejectedError{Reason: apperrors.DateOutsideAnyPeriod}
	}
	if match.Status == domain.PeriodOpen {
		return nil
	}

	for _, ex := range match.Exceptions {
		if ex.UserID == userID && ex.Allows(match.Status) {
			return nil
		}
	}
	return &apperrors.PeriodRejectedError{Reason: apperrors.PeriodClosed}
}
