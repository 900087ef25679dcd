package jsonval

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported JSON value type")
	ErrUnsupportedScan = errors.New("unsupported source type for JSON value scan")
)

// Value holds an arbitrary JSON value restricted to the JSON type universe:
// string, number, boolean, null, array, or string-keyed object. The zero
// Value is "absent" and stores as SQL NULL.
type Value struct {
	raw any
	set bool
}

// From validates an arbitrary Go value against the JSON type universe and
// wraps it. Numbers are normalized to float64.
func From(v any) (Value, error) {
	normalized, err := normalize(v)
	if err != nil {
		return Value{}, err
	}

	return Value{raw: normalized, set: true}, nil
}

// Object builds an object Value from the given fields. Fields that fail
// validation are reported, never silently dropped.
func Object(fields map[string]any) (Value, error) {
	return From(fields)
}

func normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string, bool, float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON number %q: %w", val.String(), err)
		}

		return f, nil
	case Value:
		if !val.set {
			return nil, nil
		}

		return val.raw, nil
	case []any:
		items := make([]any, len(val))

		for i, item := range val {
			normalized, err := normalize(item)
			if err != nil {
				return nil, err
			}

			items[i] = normalized
		}

		return items, nil
	case map[string]any:
		obj := make(map[string]any, len(val))

		for key, item := range val {
			normalized, err := normalize(item)
			if err != nil {
				return nil, err
			}

			obj[key] = normalized
		}

		return obj, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// IsSet reports whether the value carries anything, including an explicit null.
func (v Value) IsSet() bool {
	return v.set
}

// IsNull reports whether the value is an explicit JSON null.
func (v Value) IsNull() bool {
	return v.set && v.raw == nil
}

// IsObject reports whether the value is a JSON object.
func (v Value) IsObject() bool {
	_, ok := v.raw.(map[string]any)

	return v.set && ok
}

// Field returns the named member of an object value.
func (v Value) Field(key string) (Value, bool) {
	obj, ok := v.raw.(map[string]any)
	if !v.set || !ok {
		return Value{}, false
	}

	member, ok := obj[key]
	if !ok {
		return Value{}, false
	}

	return Value{raw: member, set: true}, true
}

// Interface exposes the underlying value for assertions in tests and
// aggregation code.
func (v Value) Interface() any {
	return v.raw
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to decode JSON value: %w", err)
	}

	normalized, err := normalize(decoded)
	if err != nil {
		return err
	}

	v.raw = normalized
	v.set = true

	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}

	return json.Marshal(v.raw) //nolint:wrapcheck
}

// Value implements driver.Valuer so the type maps to a jsonb column. An
// absent value stores as NULL.
func (v Value) Value() (driver.Value, error) {
	if !v.set || v.raw == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(v.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON value: %w", err)
	}

	return encoded, nil
}

// Scan implements sql.Scanner for jsonb columns.
func (v *Value) Scan(src any) error {
	if src == nil {
		*v = Value{}

		return nil
	}

	var data []byte

	switch typed := src.(type) {
	case []byte:
		data = typed
	case string:
		data = []byte(typed)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedScan, src)
	}

	return v.UnmarshalJSON(data)
}
