package core

import (
	"encoding/json"
	"math"
	"reflect"
)

// Truthy reports whether v counts as present under the container's falsy
// policy. nil, false, numeric zero, NaN, the empty string and nil pointers,
// maps, slices or interfaces are falsy. Everything else is truthy, including
// empty but non-nil maps and slices.
//
// Get and Set deliberately use this policy instead of a presence check, so a
// stored 0 or "" reads back as the caller's default. Use Has to test for
// presence.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() != 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}
