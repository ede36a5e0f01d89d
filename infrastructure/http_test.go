package infrastructure

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAndDecode(t *testing.T, err error) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	WriteError(rec, err)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrInvalidInput, 400},
		{ErrInvalidCredentials, 401},
		{ErrNotAuthenticated, 401},
		{ErrAccountInactive, 401},
		{ErrNotFound, 404},
		{ErrDuplicateIdentity, 409},
		{ErrTooManyAttempts, 429},
		{ErrInternalServer, 500},
		{errors.New("driver: bad connection"), 500},
	}
	for _, tc := range cases {
		status, resp := writeAndDecode(t, tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Message)
	}
}

func TestWriteErrorUsesWrappedDetail(t *testing.T) {
	status, resp := writeAndDecode(t, fmt.Errorf("%w: email or mobile number is required", ErrInvalidInput))
	assert.Equal(t, 400, status)
	assert.Equal(t, "email or mobile number is required", resp.Message)
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	_, resp := writeAndDecode(t, errors.New(`pq: relation "users" does not exist`))
	assert.Equal(t, "Server error", resp.Message)
}

func TestWriteErrorGenericCredentialsMessage(t *testing.T) {
	// Wrapped context must not leak; credential failures stay generic.
	_, resp := writeAndDecode(t, fmt.Errorf("%w: password mismatch for bob", ErrInvalidCredentials))
	assert.Equal(t, "Invalid credentials", resp.Message)
}
