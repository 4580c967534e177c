package carrier

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// UnnamedCarrier is shown when the carrier data carries no vanity name
const UnnamedCarrier = "Unnamed Carrier"

// DecodeVanityName decodes the hex-encoded carrier name sent by the companion API
func DecodeVanityName(hexName string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(hexName))
	if err != nil {
		return "", fmt.Errorf("failed to decode vanity name %q: %w", hexName, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("vanity name %q is not valid UTF-8", hexName)
	}
	return string(raw), nil
}

// DisplayName resolves the carrier's display name: the sentinel for an empty
// value, the raw hex when decoding fails, the decoded text otherwise.
// The decode error is returned so callers can log it.
func DisplayName(hexName string) (string, error) {
	if strings.TrimSpace(hexName) == "" {
		return UnnamedCarrier, nil
	}
	name, err := DecodeVanityName(hexName)
	if err != nil {
		return hexName, err
	}
	return name, nil
}
