package employeeerrors

import (
	"hris-account/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"User already has an employee record",
		http.StatusConflict,
	)
)
