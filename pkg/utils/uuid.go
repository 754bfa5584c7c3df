package utils

import "github.com/google/uuid"

// GenerateUUID generates a UUID v4 for staging temp file names.
func GenerateUUID() string {
	return uuid.NewString()
}
