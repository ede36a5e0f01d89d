package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", digest)

	assert.True(t, VerifyPassword("correct horse battery staple", digest))
	assert.False(t, VerifyPassword("wrong password", digest))
}

func TestVerifyPasswordAgainstDummyDigest(t *testing.T) {
	// The dummy digest only exists to burn bcrypt time on unknown
	// identifiers; its result is discarded by the caller.
	assert.False(t, VerifyPassword("", dummyDigest))
	assert.False(t, VerifyPassword("password123", dummyDigest))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength("aaa"))
	assert.Error(t, ValidatePasswordStrength("123456"))
	assert.NoError(t, ValidatePasswordStrength("tr0ub4dor&3-festival"))
}
