package ua

import "reflect"

// Variant holds one attribute value of any type. The zero Variant is the
// absent value: attribute reads return it, with a nil error, for optional
// attributes a node does not carry.
type Variant struct {
	v any
}

// NewVariant wraps a value.
func NewVariant(v any) Variant {
	return Variant{v: v}
}

// Value returns the wrapped value, nil for the absent Variant.
func (v Variant) Value() any { return v.v }

// IsNil reports whether the Variant is absent. A wrapped typed-nil pointer,
// slice, or map counts as absent too.
func (v Variant) IsNil() bool {
	if v.v == nil {
		return true
	}
	rv := reflect.ValueOf(v.v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Bool returns the value as a bool if it is one.
func (v Variant) Bool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

// Int returns the value widened to int64 if it is a signed integer.
func (v Variant) Int() (int64, bool) {
	switch n := v.v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

// Uint returns the value widened to uint64 if it is an unsigned integer.
func (v Variant) Uint() (uint64, bool) {
	switch n := v.v.(type) {
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	}
	return 0, false
}

// Float returns the value widened to float64 if it is a float.
func (v Variant) Float() (float64, bool) {
	switch n := v.v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
