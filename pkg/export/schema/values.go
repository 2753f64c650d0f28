package schema

import (
	"reflect"
	"time"
)

// IsNil reports whether v is nil or a typed nil pointer, map, slice,
// interface, func or channel.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Elements returns the elements of a collection value. Byte slices and
// strings are scalars. The second result is false when v is not iterable.
func Elements(v any) ([]any, bool) {
	switch c := v.(type) {
	case nil:
		return nil, false
	case []any:
		return c, true
	case []byte, string:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// IsScalar reports whether values of rt are exported as a single cell
// rather than treated as a related object.
func IsScalar(rt reflect.Type) bool {
	rt = baseType(rt)
	if rt == nil {
		return true
	}
	if rt == reflect.TypeOf(time.Time{}) {
		return true
	}
	switch rt.Kind() {
	case reflect.Struct:
		return false
	case reflect.Slice, reflect.Array:
		return rt.Elem().Kind() == reflect.Uint8 || IsScalar(rt.Elem())
	}
	return true
}
