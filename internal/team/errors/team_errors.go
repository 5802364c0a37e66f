package teamerrors

import (
	"net/http"

	"github.com/nikile1123/hris-backend/internal/shared/apperror"
)

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
		http.StatusNotFound,
	)
	ErrTeamAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Team with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid team ID",
		http.StatusBadRequest,
	)
)
