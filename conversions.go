package hstrade

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// *********** Conversions ***********

func toFloat(x any) (any, bool) {
	if f, ok := x.(float64); ok {
		return f, true
	}

	if s, ok := x.(string); ok {
		if f, e := strconv.ParseFloat(strings.TrimSpace(s), 64); e == nil {
			return f, true
		}

		return nil, false
	}

	xv := reflect.ValueOf(x)
	if xv.CanFloat() {
		return xv.Float(), true
	}

	if xv.CanInt() {
		return float64(xv.Int()), true
	}

	if xv.CanUint() {
		return float64(xv.Uint()), true
	}

	return nil, false
}

func toInt(x any) (any, bool) {
	if i, ok := x.(int); ok {
		return i, true
	}

	if s, ok := x.(string); ok {
		if i, e := strconv.ParseInt(strings.TrimSpace(s), 10, 64); e == nil {
			return int(i), true
		}

		return nil, false
	}

	xv := reflect.ValueOf(x)
	if xv.CanInt() {
		return int(xv.Int()), true
	}

	if xv.CanUint() {
		return int(xv.Uint()), true
	}

	// only floats with no fractional part
	if xv.CanFloat() {
		f := xv.Float()
		if f == float64(int(f)) {
			return int(f), true
		}
	}

	return nil, false
}

func toString(x any) (any, bool) {
	switch v := x.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case []byte:
		return string(v), true
	case time.Time:
		return v.Format("2006-01-02"), true
	}

	xv := reflect.ValueOf(x)
	switch {
	case xv.CanInt():
		return strconv.FormatInt(xv.Int(), 10), true
	case xv.CanUint():
		return strconv.FormatUint(xv.Uint(), 10), true
	case xv.CanFloat():
		return strconv.FormatFloat(xv.Float(), 'f', -1, 64), true
	}

	if s, ok := x.(fmt.Stringer); ok {
		return s.String(), true
	}

	return nil, false
}

func toDataType(x any, dt DataTypes) (any, bool) {
	switch dt {
	case DTfloat:
		return toFloat(x)
	case DTint:
		return toInt(x)
	case DTstring:
		return toString(x)
	}

	return nil, false
}

// bestType returns the narrowest type x fits: int, then float, then string.
func bestType(xIn any) (xOut any, dt DataTypes, err error) {
	if x, ok := toInt(xIn); ok {
		// a float like 2.0 stays a float
		if !reflect.ValueOf(xIn).CanFloat() {
			return x.(int), DTint, nil
		}
	}

	if x, ok := toFloat(xIn); ok {
		return x.(float64), DTfloat, nil
	}

	if x, ok := toString(xIn); ok {
		return x.(string), DTstring, nil
	}

	return nil, DTunknown, fmt.Errorf("cannot convert value of type %T", xIn)
}

// WhatAmI returns the DataTypes of val, which may be a scalar or a slice.
func WhatAmI(val any) DataTypes {
	switch val.(type) {
	case float64, []float64:
		return DTfloat
	case int, []int:
		return DTint
	case string, []string:
		return DTstring
	default:
		return DTunknown
	}
}

// deref follows pointers, as returned by some database drivers for nullable columns.
// A nil pointer or nil interface returns nil.
func deref(x any) any {
	if x == nil {
		return nil
	}

	xv := reflect.ValueOf(x)
	for xv.Kind() == reflect.Pointer {
		if xv.IsNil() {
			return nil
		}

		xv = xv.Elem()
	}

	return xv.Interface()
}

// promote combines the types of two values that share a column.
func promote(a, b DataTypes) DataTypes {
	switch {
	case a == DTunknown:
		return b
	case b == DTunknown:
		return a
	case a == b:
		return a
	case a == DTstring || b == DTstring:
		return DTstring
	default:
		return DTfloat
	}
}
