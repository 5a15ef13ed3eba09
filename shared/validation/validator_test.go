package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestStruct(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	require.NoError(t, v.Struct(loginPayload{Email: "ada@example.com", Password: "x"}))

	err = v.Struct(loginPayload{Email: "not-an-email"})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"email must be a valid email address",
		"password is a required field",
	}, verr.Messages)
	assert.Equal(t, "email must be a valid email address; password is a required field", err.Error())
}
