package autherrors

import (
	"hris-account/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	// Returned for unknown, expired and already used reset tokens alike.
	ErrInvalidResetToken = apperror.New(
		apperror.CodeInvalidToken,
		"Invalid or expired token",
		http.StatusBadRequest,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidToken,
		"Invalid or expired session",
		http.StatusUnauthorized,
	)

	ErrMissingToken = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department not found",
		http.StatusBadRequest,
	)

	ErrInvalidDOB = apperror.New(
		apperror.CodeInvalidInput,
		"Dob must be a date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidImage = apperror.New(
		apperror.CodeInvalidInput,
		"Image upload is invalid",
		http.StatusBadRequest,
	)
)
