package construction

import (
	"strings"

	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

const (
	// CanonicalSeparator splits the station prefix from the site name in
	// identities written by this tracker.
	CanonicalSeparator = ":"
	// LegacySeparator appears in identities written by older producers.
	LegacySeparator = ";"
)

// FacilityID identifies a tracked construction site, e.g. "Sol:Alpha Station"
type FacilityID string

// NewFacilityID validates and canonicalizes a raw station identity
func NewFacilityID(raw string) (FacilityID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", shared.NewValidationError("facility_id", "cannot be empty")
	}
	return CanonicalFacilityID(trimmed), nil
}

// CanonicalFacilityID rewrites a legacy ";"-delimited identity into the ":"
// form. Identities that already carry ":" (or no separator) are unchanged.
func CanonicalFacilityID(raw string) FacilityID {
	if strings.Contains(raw, CanonicalSeparator) {
		return FacilityID(raw)
	}
	if idx := strings.Index(raw, LegacySeparator); idx >= 0 {
		return FacilityID(raw[:idx] + CanonicalSeparator + raw[idx+1:])
	}
	return FacilityID(raw)
}

func (id FacilityID) String() string { return string(id) }

// IsLegacy reports whether the identity still needs canonicalization
func (id FacilityID) IsLegacy() bool {
	return CanonicalFacilityID(string(id)) != id
}

// DisplayName derives the short site name: everything after the first ":"
// (or ";" when no ":" is present), trimmed. Without a separator the full
// identity is returned.
func (id FacilityID) DisplayName() string {
	s := string(id)
	for _, sep := range []string{CanonicalSeparator, LegacySeparator} {
		if idx := strings.Index(s, sep); idx >= 0 {
			return strings.TrimSpace(s[idx+1:])
		}
	}
	return s
}

// MatchesStation reports whether a docked station name refers to this facility
func (id FacilityID) MatchesStation(station string) bool {
	station = strings.TrimSpace(station)
	if station == "" {
		return false
	}
	return strings.Contains(strings.ToLower(string(id)), strings.ToLower(station))
}
