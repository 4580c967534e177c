package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateEventID creates a readable, unique id for an event log entry.
// Format: {lowercased event kind}-{8charHexUUID}
//
// Example:
//   - Input: kind="CargoTransfer"
//   - Output: "cargotransfer-a3f8e2b1"
func GenerateEventID(kind string) string {
	prefix := strings.ToLower(strings.TrimSpace(kind))
	if prefix == "" {
		prefix = "event"
	}
	return prefix + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
