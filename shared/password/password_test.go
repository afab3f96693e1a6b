package password_test

import (
	"hotelier/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "short password", password: "abc"},
		{name: "max length password", password: strings.Repeat("a", password.MaxLength)},
		{name: "empty password", password: "", expectedError: password.ErrEmptyPassword},
		{name: "too long password", password: strings.Repeat("a", password.MaxLength+1), expectedError: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("frontdesk-2025")
	require.NoError(t, err)

	tests := []struct {
		name          string
		password      string
		hash          string
		expectedError error
	}{
		{name: "matching password", password: "frontdesk-2025", hash: hash},
		{name: "wrong password", password: "frontdesk-2024", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty hash", password: "frontdesk-2025", hash: "", expectedError: password.ErrInvalidPassword},
		{name: "malformed hash", password: "frontdesk-2025", hash: "not-a-hash", expectedError: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedError == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
