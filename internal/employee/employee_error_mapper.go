package employee

import (
	"errors"
	"strings"

	employeeerrors "hris-account/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueUserConstraint = "uq_employees_user_id"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueUserConstraint {
			return employeeerrors.ErrEmployeeAlreadyLinked
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueUserConstraint) {
		return employeeerrors.ErrEmployeeAlreadyLinked
	}

	return err
}
