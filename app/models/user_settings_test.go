package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSettingsIssueAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 1}

	key, err := us.IssueAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.NotEmpty(t, us.APIKeyHash)
	assert.NotEmpty(t, us.APIKeyPrefix)
	assert.NotNil(t, us.APIKeyCreatedAt)
	assert.Nil(t, us.APIKeyLastUsedAt)
	assert.True(t, us.HasActiveAPIKey())
	assert.Equal(t, HashAPIKey(key), us.APIKeyHash)
}

func TestUserSettingsRevokeAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 99}
	_, err := us.IssueAPIKey()
	require.NoError(t, err)

	us.RevokeAPIKey()

	assert.False(t, us.HasActiveAPIKey())
	assert.Equal(t, "", us.APIKeyHash)
	assert.Equal(t, "", us.APIKeyPrefix)
	assert.NotNil(t, us.APIKeyRevokedAt)
}

func TestUserSettingsConfirmJournalLock(t *testing.T) {
	us := &UserSettings{UserID: 1}
	require.False(t, us.JournalLockEnabled)
	require.Nil(t, us.JournalLockSyncedAt)

	us.ConfirmJournalLock(true)

	assert.True(t, us.JournalLockEnabled)
	assert.NotNil(t, us.JournalLockSyncedAt)

	us.ConfirmJournalLock(false)
	assert.False(t, us.JournalLockEnabled)
}

func TestUserSettingsHasJournalPassword(t *testing.T) {
	us := &UserSettings{UserID: 1}
	assert.False(t, us.HasJournalPassword())

	us.JournalPassword = "   "
	assert.False(t, us.HasJournalPassword())

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	us.JournalPassword = hash
	assert.True(t, us.HasJournalPassword())
	assert.True(t, CheckPasswordHash("correct horse", us.JournalPassword))
	assert.False(t, CheckPasswordHash("wrong", us.JournalPassword))
}
