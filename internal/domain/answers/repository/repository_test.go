package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUndefinedTable(t *testing.T) {
	missing := &pgconn.PgError{Code: "42P01", Message: `relation "test_answers" does not exist`}

	assert.True(t, isUndefinedTable(missing))
	assert.True(t, isUndefinedTable(fmt.Errorf("query: %w", missing)))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUndefinedTable(errors.New("connection refused")))
}
