package common

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation - SQLSTATE нарушения уникальности в PostgreSQL.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
// When constraint is not empty the violated constraint must match it too.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
