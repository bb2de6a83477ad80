package auth

import (
	"fmt"
	"strings"
)

// minSecretLength is the minimum JWT signing secret length in bytes.
const minSecretLength = 32

// weakSecrets are placeholder values that must never reach production.
var weakSecrets = []string{
	"secret",
	"changeme",
	"password",
	"jwt-secret",
	"development",
	"test",
}

// ValidateSecret checks the JWT signing secret at startup, before the
// server accepts its first request.
func ValidateSecret(secret []byte) error {
	if len(secret) == 0 {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be empty")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: must be at least %d bytes, got %d",
			minSecretLength, len(secret))
	}
	lower := strings.ToLower(string(secret))
	for _, weak := range weakSecrets {
		if strings.Contains(lower, weak) {
			return fmt.Errorf("jwt secret validation failed: secret contains a weak placeholder value")
		}
	}
	return nil
}
