package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandomToken creates a cryptographically secure random token.
// 32 bytes of entropy makes a collision within the account namespace
// implausible over the system's lifetime.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
