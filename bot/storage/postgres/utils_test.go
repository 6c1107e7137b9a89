package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	uniq := &pq.Error{Code: "23505", Constraint: "users_username_key", Message: "duplicate key value"}
	constraint, ok := uniqueViolation(uniq)
	assert.True(t, ok)
	assert.Equal(t, "users_username_key", constraint)

	constraint, ok = uniqueViolation(fmt.Errorf("insert: %w", uniq))
	assert.True(t, ok)
	assert.Equal(t, "users_username_key", constraint)

	_, ok = uniqueViolation(&pq.Error{Code: "23503", Message: "foreign key violation"})
	assert.False(t, ok)

	_, ok = uniqueViolation(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = uniqueViolation(errors.New("pq: SQLSTATE 23505"))
	assert.True(t, ok)
}

func TestIsUsernameConflict(t *testing.T) {
	assert.True(t, isUsernameConflict(&pq.Error{Code: "23505", Constraint: "users_username_key"}))

	// A sender re-signing up trips the telegram_id constraint; that must
	// not be reported as a taken username.
	assert.False(t, isUsernameConflict(&pq.Error{Code: "23505", Constraint: "users_telegram_id_key"}))
	assert.False(t, isUsernameConflict(&pq.Error{Code: "23503", Constraint: "users_username_key"}))
	assert.False(t, isUsernameConflict(errors.New("pq: SQLSTATE 23505")))
}
