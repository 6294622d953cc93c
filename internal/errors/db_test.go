package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBErrorNil(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBErrorNoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	assert.True(t, IsNotFound(err))
}

func TestMapDBErrorContext(t *testing.T) {
	assert.Equal(t, ErrCodeTimeout, GetCode(MapDBError(context.DeadlineExceeded)))
	assert.Equal(t, ErrCodeCanceled, GetCode(MapDBError(context.Canceled)))
}

func TestMapDBErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: `Key (username)=(alice) already exists.`,
	}

	err := MapDBError(pgErr)
	assert.True(t, IsConflict(err))
	assert.Equal(t, "username", GetField(err))
}

func TestMapDBErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "password_hash",
	}

	err := MapDBError(pgErr)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "password_hash", GetField(err))
}

func TestMapDBErrorUnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.DiskFull}
	err := MapDBError(pgErr)
	assert.Equal(t, ErrCodeInternal, GetCode(err))
	assert.ErrorIs(t, err, pgErr)
}

func TestMapDBErrorPassthrough(t *testing.T) {
	plain := errors.New("not a db error")
	assert.Equal(t, plain, MapDBError(plain))
}
