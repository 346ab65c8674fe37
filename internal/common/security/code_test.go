package security

import (
	"testing"
	"time"
	"todo_api/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		AccessTokenKey:      []byte("test-access-secret"),
		RefreshTokenKey:     []byte("test-refresh-secret"),
		AccessTokenExp:      15 * time.Minute,
		RefreshTokenExp:     7 * 24 * time.Hour,
		VerificationCodeExp: 10 * time.Minute,
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)

	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'), "code must be lowercase hex, got %q", code)
	}

	other, err := GenerateVerificationCode()
	require.NoError(t, err)
	assert.NotEqual(t, code, other, "two codes colliding is overwhelmingly unlikely")
}

func TestCodeExpiry(t *testing.T) {
	setupTestConfig(t)

	now := time.Date(2025, 4, 30, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(10*time.Minute), CodeExpiry(now))
}
