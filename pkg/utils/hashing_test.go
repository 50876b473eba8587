package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", hash)

	assert.NoError(t, ComparePasswords(hash, "Secret1"))
	assert.Error(t, ComparePasswords(hash, "secret1"))
	assert.Error(t, ComparePasswords("plaintext-is-not-a-hash", "plaintext-is-not-a-hash"))
}

func TestGenerateOtpCode(t *testing.T) {
	otp, err := GenerateOtpCode(6)
	require.NoError(t, err)
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}

	_, err = GenerateOtpCode(0)
	assert.Error(t, err)
}
