package shared

import "strings"

const (
	commodityMarker = "$"
	localeKeySuffix = "_name;"
)

// NormalizeCommodity maps any of the commodity identifier spellings seen in
// game data ("$gold_name;", "gold", "Gold") onto one join key ("gold").
//
// Every store and reader applies it at its boundary; upstream casing is never
// trusted.
func NormalizeCommodity(name string) string {
	key := strings.TrimSpace(name)
	key = strings.TrimPrefix(key, commodityMarker)
	key = strings.ToLower(key)
	key = strings.TrimSuffix(key, localeKeySuffix)
	key = strings.TrimSuffix(key, ";")
	return strings.TrimSpace(key)
}
