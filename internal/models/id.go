package models

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a new opaque record identifier.
func NewID() string {
	return uuid.NewString()
}

// ParseID validates a client-supplied identifier.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id.String(), nil
}
