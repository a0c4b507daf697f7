package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
}

func TestBcryptHasher_RejectsShortPasswords(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooWeak)
}

func TestNewBcryptHasher_ClampsInvalidCost(t *testing.T) {
	// An out-of-range cost falls back to the bcrypt default instead of
	// failing at hash time.
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("longenoughpassword")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "longenoughpassword"))
}
