package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts a UUID article ID from a URL path. It removes the
// prefix and validates the remainder as a canonical UUID.
//
// Example:
//
//	id, err := ExtractID("/articles/8c2b...", "/articles/")
func ExtractID(path, prefix string) (string, error) {
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == "" || strings.ContainsRune(idStr, '/') {
		return "", ErrInvalidID
	}
	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return "", ErrInvalidID
	}
	return parsed.String(), nil
}
