package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// uniqueViolation reports whether err is a unique_violation (23505) and
// names the violated constraint when the driver exposes it.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return pqErr.Constraint, true
		}
		return "", false
	}
	if strings.Contains(err.Error(), "23505") {
		return "", true
	}
	return "", false
}

// isUsernameConflict reports whether err is a duplicate-username insert.
// A 23505 on any other constraint (telegram_id) is not a username clash.
func isUsernameConflict(err error) bool {
	constraint, ok := uniqueViolation(err)
	return ok && strings.Contains(constraint, "username")
}
