package bridge

import (
	"encoding/json"
	"math"
	"strconv"
)

// Object returns payload as a map, or nil when it is anything else.
func Object(payload any) Payload {
	m, _ := payload.(map[string]any)
	return m
}

// Float reads key from an object payload. Numbers of any Go kind, numeric
// strings and json.Number are accepted; NaN and infinities are rejected.
func Float(payload any, key string) (float64, bool) {
	m := Object(payload)
	if m == nil {
		return 0, false
	}
	return toFloat(m[key])
}

// FloatOr reads key, falling back to def when absent or malformed.
func FloatOr(payload any, key string, def float64) float64 {
	if v, ok := Float(payload, key); ok {
		return v
	}
	return def
}

// Bool reads key as a boolean. Numbers are true when above 0.5, matching
// how the host stores toggles as floats.
func Bool(payload any, key string) (bool, bool) {
	m := Object(payload)
	if m == nil {
		return false, false
	}
	switch v := m[key].(type) {
	case bool:
		return v, true
	case nil:
		return false, false
	default:
		f, ok := toFloat(v)
		return ok && f > 0.5, ok
	}
}

// String reads key as a string.
func String(payload any, key string) string {
	m := Object(payload)
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	case string:
		var err error
		if f, err = strconv.ParseFloat(n, 64); err != nil {
			return 0, false
		}
	case bool:
		if n {
			f = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
