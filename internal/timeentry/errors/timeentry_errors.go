package timeentryerrors

import (
	"net/http"

	"leavetrack/internal/shared/apperror"
)

var (
	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid person id",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timestamp, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"no open clock-in for this person",
		http.StatusConflict,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"already clocked in",
		http.StatusConflict,
	)
)
