package security

import (
	"crypto/rand"
	"encoding/hex"
	"time"
	"todo_api/internal/platform/config"
)

// GenerateVerificationCode returns a 6-character hex code. Codes are random,
// not unique; the expected issuance rate makes collisions negligible.
func GenerateVerificationCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// CodeExpiry returns the expiry timestamp for a code issued at now.
func CodeExpiry(now time.Time) time.Time {
	return now.Add(config.AppConfig.VerificationCodeExp)
}
