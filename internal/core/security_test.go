// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	valid, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)

	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-an-argon2-hash")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafeMissingUser(t *testing.T) {
	valid, newHash, err := VerifyPasswordTimingSafe("password", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, newHash)

	empty := ""
	valid, _, err = VerifyPasswordTimingSafe("password", &empty)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordTimingSafeRealHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	valid, _, err := VerifyPasswordTimingSafe("s3cret", &hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, _, err = VerifyPasswordTimingSafe("nope", &hash)
	require.NoError(t, err)
	assert.False(t, valid)
}
