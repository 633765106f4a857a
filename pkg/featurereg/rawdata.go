package featurereg

import "time"

// RawData is the read-only field mapping handed to Compute. The library
// imposes no schema on it beyond what individual features choose to
// read. All accessor methods return the default value if the key is
// missing or the value cannot be converted to the requested type.
type RawData struct {
	data map[string]any
}

// NewRawData wraps a field map. If data is nil, an empty RawData is
// returned. The map is not copied; the raw data source owns it and must
// not mutate it during evaluation.
func NewRawData(data map[string]any) RawData {
	if data == nil {
		data = make(map[string]any)
	}
	return RawData{data: data}
}

// Has reports whether a field is present.
func (r RawData) Has(key string) bool {
	_, ok := r.data[key]
	return ok
}

// Len returns the number of fields.
func (r RawData) Len() int {
	return len(r.data)
}

// Value returns the raw value for key and whether it exists.
func (r RawData) Value(key string) (any, bool) {
	v, ok := r.data[key]
	return v, ok
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (r RawData) String(key, defaultVal string) string {
	v, ok := r.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - int: used directly
//   - int64: converted to int
//   - float64: converted to int (only if no fractional part)
func (r RawData) Int(key string, defaultVal int) int {
	v, ok := r.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Float returns the float64 value for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - float64: used directly
//   - float32: converted to float64
//   - int: converted to float64
//   - int64: converted to float64
func (r RawData) Float(key string, defaultVal float64) float64 {
	v, ok := r.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (r RawData) Bool(key string, defaultVal bool) bool {
	v, ok := r.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

// Time returns the time value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - time.Time: used directly
//   - string: parsed as RFC 3339
func (r RawData) Time(key string, defaultVal time.Time) time.Time {
	v, ok := r.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case time.Time:
		return val
	case string:
		if ts, err := time.Parse(time.RFC3339, val); err == nil {
			return ts
		}
	}
	return defaultVal
}
