package requesterrors

import (
	"fmt"
	"net/http"

	"leavetrack/internal/shared/apperror"
)

// Domain error codes surfaced to the caller alongside the shared ones.
const (
	CodeInvalidDate         = "INVALID_DATE"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInsufficientNotice  = "INSUFFICIENT_NOTICE"
	CodeLateSubmission      = "LATE_SUBMISSION"
	CodeExceedsMaximum      = "EXCEEDS_MAXIMUM"
	CodeAlreadyProcessed    = "ALREADY_PROCESSED"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrStartDateNotFuture = apperror.New(
		CodeInvalidDate,
		"start date must be in the future",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		CodeInvalidDate,
		"end date must be after start date",
		http.StatusBadRequest,
	)
	ErrInsufficientNotice = apperror.New(
		CodeInsufficientNotice,
		"vacation requests must be submitted at least 2 weeks in advance",
		http.StatusBadRequest,
	)
	ErrLateSubmission = apperror.New(
		CodeLateSubmission,
		"sick leave requests cannot be submitted more than 3 days after the start date",
		http.StatusBadRequest,
	)
	ErrExceedsMaximum = apperror.New(
		CodeExceedsMaximum,
		"sick leave cannot exceed 30 days",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		CodeAlreadyProcessed,
		"request has already been processed",
		http.StatusConflict,
	)
)

// InsufficientBalance carries the computed day count and the available
// balance so the caller sees both numbers.
func InsufficientBalance(requested, available int) *apperror.AppError {
	return apperror.New(
		CodeInsufficientBalance,
		fmt.Sprintf("requested %d days exceeds available balance of %d days", requested, available),
		http.StatusBadRequest,
	)
}
