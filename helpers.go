package hstrade

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

func toSlc(xIn any, target DataTypes) (any, bool) {
	var outType reflect.Type
	switch target {
	case DTfloat:
		outType = reflect.TypeOf([]float64{})
	case DTint:
		outType = reflect.TypeOf([]int{})
	case DTstring:
		outType = reflect.TypeOf([]string{})
	default:
		return nil, false
	}

	x := reflect.ValueOf(xIn)

	// nothing to do
	if x.Type() == outType {
		return xIn, true
	}

	if x.Kind() != reflect.Slice {
		val, ok := toDataType(xIn, target)
		if !ok {
			return nil, false
		}

		xOut := reflect.MakeSlice(outType, 1, 1)
		xOut.Index(0).Set(reflect.ValueOf(val))

		return xOut.Interface(), true
	}

	xOut := reflect.MakeSlice(outType, x.Len(), x.Len())
	for ind := 0; ind < x.Len(); ind++ {
		val, ok := toDataType(x.Index(ind).Interface(), target)
		if !ok {
			return nil, false
		}

		xOut.Index(ind).Set(reflect.ValueOf(val))
	}

	return xOut.Interface(), true
}

// inferVector builds a Vector from raw values, choosing the narrowest type that holds all of them.
// nil values are missing. If asString is true the column is kept as text.
func inferVector(vals []any, asString bool) (*Vector, error) {
	dt := DTunknown
	if asString {
		dt = DTstring
	}

	for ind := 0; ind < len(vals) && dt != DTstring; ind++ {
		if vals[ind] == nil {
			continue
		}

		_, dtx, e := bestType(vals[ind])
		if e != nil {
			return nil, e
		}

		dt = promote(dt, dtx)
	}

	// all missing
	if dt == DTunknown {
		dt = DTfloat
	}

	v := MakeVector(dt, len(vals))
	for ind, val := range vals {
		if e := v.Set(val, ind); e != nil {
			return nil, e
		}
	}

	return v, nil
}

// *********** Other ***********

func has[C comparable](needle C, haystack []C) bool {
	return position(needle, haystack) >= 0
}

func position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

func validName(name string) error {
	const illegal = "\"'`,\n\r\t"

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty column name")
	}

	if strings.ContainsAny(name, illegal) {
		return fmt.Errorf("illegal character in column name %q", name)
	}

	return nil
}

func prettyPrint(header []string, cols ...*Vector) string {
	var colsS [][]string

	for ind := 0; ind < len(cols); ind++ {
		colsS = append(colsS, stringSlice(header[ind], cols[ind]))
	}

	if len(colsS) == 0 {
		return ""
	}

	out := ""
	for row := 0; row < len(colsS[0]); row++ {
		for c := 0; c < len(colsS); c++ {
			out += colsS[c][row]
		}
		out += "\n"
	}

	return out
}

func stringSlice(header string, v *Vector) []string {
	const pad = 3
	c := []string{header}

	format := ""
	switch v.VectorType() {
	case DTfloat:
		format = selectFormat(v.AsAny().([]float64))
	case DTint:
		format = "%d"
	}

	maxLen := len(header)
	for ind := 0; ind < v.Len(); ind++ {
		var el string
		switch x := v.Element(ind); {
		case x == nil:
			el = NAstring
		case format != "":
			el = fmt.Sprintf(format, x)
		default:
			el = x.(string)
		}

		if l := len(el); l > maxLen {
			maxLen = l
		}

		c = append(c, el)
	}

	for ind, cx := range c {
		padded := cx + strings.Repeat(" ", maxLen-len(cx)+pad)
		if v.VectorType().IsNumeric() {
			padded = strings.Repeat(" ", maxLen-len(cx)+pad) + cx
		}
		c[ind] = padded
	}

	return c
}

func selectFormat(x []float64) string {
	if len(x) == 0 {
		return "%.1f"
	}

	minX := math.Abs(x[0])
	maxX := math.Abs(x[0])
	for _, xv := range x {
		xva := math.Abs(xv)
		if xva < minX {
			minX = xva
		}

		if xva > maxX {
			maxX = xva
		}
	}

	rangeX := maxX - minX
	l := math.Log10(rangeX)
	var dp int
	switch {
	case rangeX == 0 || math.IsNaN(rangeX) || math.IsInf(rangeX, 0):
		dp = 1
	case l < -1:
		dp = int(math.Abs(l)+0.5) + 1
	case l > 1:
		dp = 0
	default:
		dp = 1
	}

	return "%." + fmt.Sprintf("%d", dp) + "f"
}
