package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	e := &AppError{Code: ErrCodeValidation, Message: "bad input"}
	assert.Equal(t, "bad input", e.Error())

	cause := errors.New("boom")
	e = &AppError{Code: ErrCodeInternal, Message: "wrapped", Cause: cause}
	assert.Equal(t, "wrapped: boom", e.Error())
	assert.ErrorIs(t, e, cause)
}

func TestAuthenticationMerged(t *testing.T) {
	// Unknown user and bad password must produce indistinguishable errors.
	unknownUser := Authentication()
	badPassword := Authentication()

	assert.Equal(t, unknownUser.Error(), badPassword.Error())
	assert.Equal(t, unknownUser.Code, badPassword.Code)
	assert.True(t, IsAuthentication(unknownUser))
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsValidation(ValidationField("name", "required")))
	assert.True(t, IsDenied(Denied("no")))
	assert.True(t, IsSessionExpired(SessionExpired()))
	assert.False(t, IsNotFound(Conflict("x")))
	assert.False(t, IsAuthentication(errors.New("plain")))
}

func TestCodePredicatesThroughWrapping(t *testing.T) {
	inner := SessionExpired()
	outer := fmt.Errorf("resolve session: %w", inner)
	assert.True(t, IsSessionExpired(outer))
	assert.Equal(t, ErrCodeSessionExpired, GetCode(outer))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))

	cause := errors.New("disk full")
	e := Wrapf(cause, ErrCodeInternal, "save %s", "user")
	assert.Equal(t, ErrCodeInternal, e.Code)
	assert.ErrorIs(t, e, cause)
}

func TestGetField(t *testing.T) {
	assert.Equal(t, "username", GetField(ValidationField("username", "taken")))
	assert.Equal(t, "", GetField(errors.New("plain")))
}
