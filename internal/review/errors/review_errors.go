package reviewerrors

import (
	"net/http"

	"github.com/nikile1123/hris-backend/internal/shared/apperror"
)

var (
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"Performance review not found",
		http.StatusNotFound,
	)
	ErrInvalidReviewID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid review ID",
		http.StatusBadRequest,
	)
	ErrInvalidReviewDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid review date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
