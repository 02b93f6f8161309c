package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	encrypted, err := Encrypt([]byte("late_sk_live_abc123"), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, "late_sk_live_abc123", encrypted)

	decrypted, err := Decrypt(encrypted, testKey)
	require.NoError(t, err)
	assert.Equal(t, "late_sk_live_abc123", decrypted)
}

func TestEncryptProducesDistinctCiphertexts(t *testing.T) {
	first, err := Encrypt([]byte("same input"), testKey)
	require.NoError(t, err)
	second, err := Encrypt([]byte("same input"), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)

	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	_, err = Decrypt(encrypted, otherKey)
	assert.Error(t, err)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	_, err := Decrypt("not-base64!!", testKey)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("signing-secret", "42", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("signing-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("signing-secret", "42", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("signing-secret", "42", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("signing-secret", token)
	assert.Error(t, err)
}

func TestGenerateRandomKeyLength(t *testing.T) {
	key, err := GenerateRandomKey(32)
	require.NoError(t, err)
	assert.Len(t, key, 44, "32 random bytes base64-encoded")

	other, err := GenerateRandomKey(32)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}
