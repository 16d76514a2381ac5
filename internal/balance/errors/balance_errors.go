package balanceerrors

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
	ErrNoFieldsToSet = apperror.New(
		apperror.CodeInvalidInput,
		"at least one balance field must be provided",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		"BALANCE_NOT_FOUND",
		"user balance not found",
		http.StatusNotFound,
	)
)
