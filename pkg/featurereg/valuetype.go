package featurereg

import (
	"fmt"
	"time"
)

// ValueType is the closed set of value kinds a feature may produce.
// It is carried in Metadata and checked against computed values at
// evaluation time via TypeOf.
type ValueType int

const (
	// TypeUnknown is the zero value, returned by TypeOf for values
	// outside the supported set. It is never a valid declared type.
	TypeUnknown ValueType = iota

	// TypeInt matches int and int64 values.
	TypeInt

	// TypeFloat matches float64 and float32 values.
	TypeFloat

	// TypeString matches string values.
	TypeString

	// TypeBool matches bool values.
	TypeBool

	// TypeTimestamp matches time.Time values.
	TypeTimestamp
)

// String returns the canonical lowercase name of the type.
func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the declared value types.
func (t ValueType) Valid() bool {
	return t >= TypeInt && t <= TypeTimestamp
}

// ParseValueType parses a canonical type name as produced by String.
// It accepts "int", "float", "string", "bool", and "timestamp".
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "string":
		return TypeString, nil
	case "bool":
		return TypeBool, nil
	case "timestamp":
		return TypeTimestamp, nil
	default:
		return TypeUnknown, fmt.Errorf("unknown value type: %q", s)
	}
}

// TypeOf returns the ValueType tag for a runtime value.
// Values outside the closed set tag as TypeUnknown.
func TypeOf(v any) ValueType {
	switch v.(type) {
	case int, int64:
		return TypeInt
	case float64, float32:
		return TypeFloat
	case string:
		return TypeString
	case bool:
		return TypeBool
	case time.Time:
		return TypeTimestamp
	default:
		return TypeUnknown
	}
}

// MarshalText implements encoding.TextMarshaler so ValueType round-trips
// through YAML and JSON manifests.
func (t ValueType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid value type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ValueType) UnmarshalText(text []byte) error {
	parsed, err := ParseValueType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
