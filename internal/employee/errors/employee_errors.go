package employeeerrors

import (
	"net/http"

	"github.com/nikile1123/hris-backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrSupervisorNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Supervisor not found",
		http.StatusBadRequest,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrCycleDetected = apperror.New(
		apperror.CodeInvalidState,
		"Cycle detected: supervisor is a subordinate of this employee",
		http.StatusConflict,
	)
	ErrHierarchyTooDeep = apperror.New(
		apperror.CodeInternalError,
		"Supervisor chain exceeds the maximum depth",
		http.StatusInternalServerError,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid team ID",
		http.StatusBadRequest,
	)
	ErrInvalidSupervisorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid supervisor ID",
		http.StatusBadRequest,
	)
)
