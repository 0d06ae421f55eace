package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "password123"},
		{name: "password with special chars", password: "p@ssw0rd!@#$%^&*()"},
		{name: "unicode password", password: "пароль-हॉस्टल"},
		{name: "short password", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetHash(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, gotHash)
			assert.NotEqual(t, tt.password, gotHash)
			assert.NoError(t, CompareHash(gotHash, tt.password))
		})
	}
}

func TestGetHash_Salted(t *testing.T) {
	first, err := GetHash("same-password")
	require.NoError(t, err)
	second, err := GetHash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCompareHash(t *testing.T) {
	hash, err := GetHash("correct")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		assert.ErrorIs(t, CompareHash(hash, "wrong"), ErrMismatch)
	})

	t.Run("broken hash", func(t *testing.T) {
		err := CompareHash("not-a-bcrypt-hash", "correct")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMismatch)
		assert.Contains(t, err.Error(), "password.CompareHash")
	})
}
