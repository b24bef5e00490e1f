package hstrade

import (
	"fmt"
)

// NAstring is the string form of a missing value.
const NAstring = "nan"

// Vector holds the data of a column. data is one of []float64, []int, []string.
// na marks missing elements; it is nil when nothing is missing.
type Vector struct {
	dt DataTypes

	data any
	na   []bool
}

// NewVector makes a Vector of type dt from data, which may be a slice of any type convertible to dt.
func NewVector(data any, dt DataTypes) (*Vector, error) {
	var (
		v  any
		ok bool
	)
	if v, ok = toSlc(data, dt); !ok {
		return nil, fmt.Errorf("cannot make vector of type %s", dt)
	}

	return &Vector{dt: dt, data: v}, nil
}

// MakeVector returns a zero-valued Vector of length n.
func MakeVector(dt DataTypes, n int) *Vector {
	switch dt {
	case DTfloat:
		return &Vector{dt: dt, data: make([]float64, n)}
	case DTint:
		return &Vector{dt: dt, data: make([]int, n)}
	case DTstring:
		return &Vector{dt: dt, data: make([]string, n)}
	default:
		panic(fmt.Errorf("cannot make Vector with data type %s", dt))
	}
}

func (v *Vector) VectorType() DataTypes {
	return v.dt
}

func (v *Vector) Len() int {
	switch v.dt {
	case DTfloat:
		return len(v.data.([]float64))
	case DTint:
		return len(v.data.([]int))
	case DTstring:
		return len(v.data.([]string))
	default:
		panic(fmt.Errorf("unexpected error in Vector.Len"))
	}
}

// ***************** Missing values *****************

func (v *Vector) SetNA(indx int) error {
	if indx < 0 || indx >= v.Len() {
		return fmt.Errorf("index out of range")
	}

	if v.na == nil {
		v.na = make([]bool, v.Len())
	}

	v.na[indx] = true

	return nil
}

func (v *Vector) IsNA(indx int) bool {
	return v.na != nil && v.na[indx]
}

// NAcount returns the number of missing elements.
func (v *Vector) NAcount() int {
	n := 0
	for _, x := range v.na {
		if x {
			n++
		}
	}

	return n
}

// ***************** Setters *****************

func (v *Vector) SetFloat(val float64, indx int) error {
	if v.VectorType() != DTfloat {
		return fmt.Errorf("vector isn't DTfloat")
	}

	if indx < 0 || indx >= v.Len() {
		return fmt.Errorf("index out of range")
	}

	v.data.([]float64)[indx] = val

	return nil
}

func (v *Vector) SetInt(val, indx int) error {
	if v.VectorType() != DTint {
		return fmt.Errorf("vector isn't DTint")
	}

	if indx < 0 || indx >= v.Len() {
		return fmt.Errorf("index out of range")
	}

	v.data.([]int)[indx] = val

	return nil
}

func (v *Vector) SetString(val string, indx int) error {
	if v.VectorType() != DTstring {
		return fmt.Errorf("vector isn't DTstring")
	}

	if indx < 0 || indx >= v.Len() {
		return fmt.Errorf("index out of range")
	}

	v.data.([]string)[indx] = val

	return nil
}

// Set converts val to the type of v and stores it at indx. A nil val is stored as missing.
func (v *Vector) Set(val any, indx int) error {
	if val == nil {
		return v.SetNA(indx)
	}

	x, ok := toDataType(val, v.dt)
	if !ok {
		return fmt.Errorf("cannot convert %v to %s", val, v.dt)
	}

	switch v.dt {
	case DTfloat:
		return v.SetFloat(x.(float64), indx)
	case DTint:
		return v.SetInt(x.(int), indx)
	default:
		return v.SetString(x.(string), indx)
	}
}

// ***************** Getters *****************

func (v *Vector) AsAny() any {
	return v.data
}

// AsFloat returns the data as []float64. Missing elements are returned as their stored value;
// check IsNA.
func (v *Vector) AsFloat() ([]float64, error) {
	switch v.dt {
	case DTfloat:
		return v.data.([]float64), nil
	case DTint:
		xOut := make([]float64, v.Len())
		for ind, xx := range v.data.([]int) {
			xOut[ind] = float64(xx)
		}

		return xOut, nil
	}

	var (
		vx *Vector
		e  error
	)
	if vx, e = v.Coerce(DTfloat); e != nil {
		return nil, e
	}

	return vx.data.([]float64), nil
}

func (v *Vector) AsInt() ([]int, error) {
	if v.dt == DTint {
		return v.data.([]int), nil
	}

	var (
		vx *Vector
		e  error
	)
	if vx, e = v.Coerce(DTint); e != nil {
		return nil, e
	}

	return vx.data.([]int), nil
}

// AsString returns the string form of every element; missing elements are NAstring.
func (v *Vector) AsString() []string {
	xOut := make([]string, v.Len())
	for ind := 0; ind < v.Len(); ind++ {
		xOut[ind] = v.ElementString(ind)
	}

	return xOut
}

// Element returns the value at indx, nil if it is missing.
func (v *Vector) Element(indx int) any {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	if v.IsNA(indx) {
		return nil
	}

	switch v.dt {
	case DTfloat:
		return v.data.([]float64)[indx]
	case DTint:
		return v.data.([]int)[indx]
	case DTstring:
		return v.data.([]string)[indx]
	default:
		panic(fmt.Errorf("error in Element"))
	}
}

func (v *Vector) ElementString(indx int) string {
	x := v.Element(indx)
	if x == nil {
		return NAstring
	}

	if s, ok := toString(x); ok {
		return s.(string)
	}

	return ""
}

// ***************** Other *****************

// Append adds data to the end of v. A nil value is appended as missing.
func (v *Vector) Append(data ...any) error {
	for ind := 0; ind < len(data); ind++ {
		n := v.Len()
		var zero any
		switch v.dt {
		case DTfloat:
			v.data, zero = append(v.data.([]float64), 0), 0.0
		case DTint:
			v.data, zero = append(v.data.([]int), 0), 0
		case DTstring:
			v.data, zero = append(v.data.([]string), ""), ""
		}

		if v.na != nil {
			v.na = append(v.na, false)
		}

		if data[ind] == nil {
			if e := v.SetNA(n); e != nil {
				return e
			}

			continue
		}

		if e := v.Set(data[ind], n); e != nil {
			_ = v.Set(zero, n)
			return e
		}
	}

	return nil
}

func (v *Vector) Copy() *Vector {
	vCopy := &Vector{dt: v.dt}
	switch v.dt {
	case DTfloat:
		x := make([]float64, v.Len())
		copy(x, v.data.([]float64))
		vCopy.data = x
	case DTint:
		x := make([]int, v.Len())
		copy(x, v.data.([]int))
		vCopy.data = x
	case DTstring:
		x := make([]string, v.Len())
		copy(x, v.data.([]string))
		vCopy.data = x
	default:
		panic(fmt.Errorf("unexpected error in Vector.Copy"))
	}

	if v.na != nil {
		vCopy.na = make([]bool, len(v.na))
		copy(vCopy.na, v.na)
	}

	return vCopy
}

// Where returns the elements of v for which keep is true.
func (v *Vector) Where(keep []bool) (*Vector, error) {
	if len(keep) != v.Len() {
		return nil, fmt.Errorf("Where: keep has length %d, vector has length %d", len(keep), v.Len())
	}

	outVec := MakeVector(v.VectorType(), 0)
	for ind := 0; ind < v.Len(); ind++ {
		if !keep[ind] {
			continue
		}

		if e := outVec.Append(v.Element(ind)); e != nil {
			return nil, e
		}
	}

	return outVec, nil
}

// Coerce returns a copy of v converted to type to. Missing elements stay missing.
func (v *Vector) Coerce(to DataTypes) (*Vector, error) {
	xOut := MakeVector(to, v.Len())
	for ind := 0; ind < v.Len(); ind++ {
		if v.IsNA(ind) {
			_ = xOut.SetNA(ind)
			continue
		}

		if e := xOut.Set(v.Element(ind), ind); e != nil {
			return nil, e
		}
	}

	return xOut, nil
}
