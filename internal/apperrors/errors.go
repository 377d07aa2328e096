package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting user lacks the permission for an action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when a dependency failed in a way the caller cannot fix.
var ErrInternal = errors.New("internal error")

// ErrSequenceConflict is returned when a freshly allocated daily or
// cross-reference number was taken by a concurrent save.
var ErrSequenceConflict = fmt.Errorf("%w: sequence number already taken", ErrDuplicate)

// ErrVoucherNumberDuplicate is returned when a voucher number is already used
// by another voucher of the same ledger, fiscal year and branch.
var ErrVoucherNumberDuplicate = fmt.Errorf("%w: voucher number already used", ErrDuplicate)

// Voucher rule violations. Every one of them wraps ErrValidation so handlers can
// treat them uniformly as client errors.
var (
	ErrMissingRequiredField      = fmt.Errorf("%w: required field missing", ErrValidation)
	ErrTrackingRequired          = fmt.Errorf("%w: tracking number and date are required", ErrValidation)
	ErrQuantityRequired          = fmt.Errorf("%w: quantity is required", ErrValidation)
	ErrCurrencyRequired          = fmt.Errorf("%w: currency conversion rates are required", ErrValidation)
	ErrDetailRequired            = fmt.Errorf("%w: detail selection is required", ErrValidation)
	ErrDuplicateRow              = fmt.Errorf("%w: duplicate row", ErrValidation)
	ErrZeroAmount                = fmt.Errorf("%w: voucher total is zero", ErrValidation)
	ErrUnbalanced                = fmt.Errorf("%w: total debit does not equal total credit", ErrValidation)
	ErrBranchRequired            = fmt.Errorf("%w: branch is required", ErrValidation)
	ErrSubsidiaryNumberDuplicate = fmt.Errorf("%w: subsidiary number already used in this fiscal year", ErrValidation)
	ErrPeriodRejected            = fmt.Errorf("%w: fiscal period rejects this date", ErrValidation)
	ErrManualNumberRequired      = fmt.Errorf("%w: voucher number must be entered manually", ErrValidation)
	ErrInvalidAccount            = fmt.Errorf("%w: account cannot be used on a voucher line", ErrValidation)
	ErrReadOnly                  = fmt.Errorf("%w: voucher is read-only in its current status", ErrValidation)
	ErrInvalidStatusTransition   = fmt.Errorf("%w: status transition not allowed", ErrValidation)
)

// RowError ties a rule violation to the 1-based row that caused it.
type RowError struct {
	Err        error
	Row        int
	DetailType string
}

func (e *RowError) Error() string {
	if e.DetailType != "" {
		return fmt.Sprintf("row %d: %s (%s)", e.Row, e.Err.Error(), e.DetailType)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Err.Error())
}

func (e *RowError) Unwrap() error { return e.Err }

// NewRowError wraps err for the given row.
func NewRowError(err error, row int) *RowError {
	return &RowError{Err: err, Row: row}
}

// PeriodRejectReason explains why the fiscal period gate refused a date.
type PeriodRejectReason string

const (
	NoPeriodsDefined     PeriodRejectReason = "NO_PERIODS_DEFINED"
	DateOutsideAnyPeriod PeriodRejectReason = "DATE_OUTSIDE_ANY_PERIOD"
	PeriodClosed         PeriodRejectReason = "PERIOD_CLOSED"
)

// PeriodRejectedError is returned by the fiscal period gate.
type PeriodRejectedError struct {
	Reason PeriodRejectReason
}

func (e *PeriodRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPeriodRejected.Error(), e.Reason)
}

func (e *PeriodRejectedError) Unwrap() error { return ErrPeriodRejected }

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
