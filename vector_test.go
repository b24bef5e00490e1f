package hstrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVector(t *testing.T) {
	v, e := NewVector([]int{1, 2, 3}, DTfloat)
	assert.Nil(t, e)
	assert.Equal(t, []float64{1, 2, 3}, v.AsAny())

	v, e = NewVector([]string{"1", "22"}, DTint)
	assert.Nil(t, e)
	assert.Equal(t, []int{1, 22}, v.AsAny())

	_, e = NewVector([]string{"a"}, DTfloat)
	assert.NotNil(t, e)

	v, e = NewVector(3.5, DTstring)
	assert.Nil(t, e)
	assert.Equal(t, []string{"3.5"}, v.AsAny())
}

func TestVector_NA(t *testing.T) {
	v := MakeVector(DTint, 3)
	assert.Equal(t, 0, v.NAcount())
	assert.Nil(t, v.SetNA(1))
	assert.NotNil(t, v.SetNA(3))

	assert.True(t, v.IsNA(1))
	assert.False(t, v.IsNA(0))
	assert.Nil(t, v.Element(1))
	assert.Equal(t, NAstring, v.ElementString(1))
	assert.Equal(t, []string{"0", NAstring, "0"}, v.AsString())

	vc, e := v.Coerce(DTfloat)
	assert.Nil(t, e)
	assert.True(t, vc.IsNA(1))
}

func TestVector_Append(t *testing.T) {
	v := MakeVector(DTfloat, 0)
	assert.Nil(t, v.Append(1, 2.5, nil, "4"))
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, []float64{1, 2.5, 0, 4}, v.AsAny())
	assert.True(t, v.IsNA(2))

	assert.NotNil(t, v.Append("x"))
}

func TestVector_Where(t *testing.T) {
	v, _ := NewVector([]string{"a", "b", "c"}, DTstring)
	_ = v.SetNA(2)

	w, e := v.Where([]bool{false, true, true})
	assert.Nil(t, e)
	assert.Equal(t, []string{"b", ""}, w.AsAny())
	assert.True(t, w.IsNA(1))

	_, e = v.Where([]bool{true})
	assert.NotNil(t, e)
}

func TestVector_As(t *testing.T) {
	v, _ := NewVector([]int{1, 2}, DTint)
	f, e := v.AsFloat()
	assert.Nil(t, e)
	assert.Equal(t, []float64{1, 2}, f)

	s, _ := NewVector([]string{"1.5", "x"}, DTstring)
	_, e = s.AsFloat()
	assert.NotNil(t, e)

	fv, _ := NewVector([]float64{120590, 1.25}, DTfloat)
	assert.Equal(t, []string{"120590", "1.25"}, fv.AsString())
}

func TestBestType(t *testing.T) {
	_, dt, _ := bestType("120590")
	assert.Equal(t, DTint, dt)

	_, dt, _ = bestType("1.5")
	assert.Equal(t, DTfloat, dt)

	_, dt, _ = bestType(2.0)
	assert.Equal(t, DTfloat, dt)

	_, dt, _ = bestType("01x")
	assert.Equal(t, DTstring, dt)

	assert.Equal(t, DTfloat, promote(DTint, DTfloat))
	assert.Equal(t, DTstring, promote(DTfloat, DTstring))
	assert.Equal(t, DTint, promote(DTunknown, DTint))
}

func TestDTFromString(t *testing.T) {
	assert.Equal(t, DTfloat, DTFromString("DTfloat"))
	assert.Equal(t, DTunknown, DTFromString("DTnope"))
	assert.True(t, DTint.IsNumeric())
	assert.False(t, DTstring.IsNumeric())
}
