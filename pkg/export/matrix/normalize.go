package matrix

import (
	"fmt"
	"reflect"
	"time"
)

// Normalize converts a raw member value into a cell value. Nil becomes the
// empty string and times are formatted as RFC 3339. Errors and Stringers
// are rendered as text. Numbers, booleans and strings pass through;
// anything else is printed with fmt.Sprint.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.RFC3339)
	case *time.Time:
		if x == nil || x.IsZero() {
			return ""
		}
		return x.Format(time.RFC3339)
	case error:
		if isNilPointer(v) {
			return ""
		}
		return x.Error()
	case fmt.Stringer:
		if isNilPointer(v) {
			return ""
		}
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

// Text renders a normalized value as a string.
func Text(v any) string {
	switch x := Normalize(v).(type) {
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
