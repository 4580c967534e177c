package journal

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Journal payloads arrive as decoded JSON, so numbers may be float64 or
// json.Number depending on the decoder.

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func intField(m map[string]interface{}, key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	return toInt(m[key])
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func mapField(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	if m == nil {
		return nil, false
	}
	sub, ok := m[key].(map[string]interface{})
	return sub, ok
}

// listField returns the list under key. present is false when the key is
// absent; ok is false when it is present but not a list.
func listField(m map[string]interface{}, key string) (items []interface{}, present bool, ok bool) {
	if m == nil {
		return nil, false, true
	}
	raw, present := m[key]
	if !present || raw == nil {
		return nil, present, true
	}
	items, ok = raw.([]interface{})
	return items, true, ok
}
