package hstrade

import "fmt"

// Column interface defines the methods of the columns of a DF
type Column interface {
	Copy() Column
	Data() *Vector
	DataType() DataTypes
	Len() int
	Name() string
	Rename(newName string) error
	String() string
}

// *********** Col ***********

// Col is an in-memory column: a named Vector.
type Col struct {
	name string

	*Vector
}

// NewCol makes a column of type dt from data. data is any slice convertible to dt.
func NewCol(data any, dt DataTypes, ops ...ColOpt) (*Col, error) {
	var (
		v *Vector
		e error
	)
	if v, e = NewVector(data, dt); e != nil {
		return nil, e
	}

	return NewColVector(v, ops...)
}

// NewColVector makes a column around v.
func NewColVector(v *Vector, ops ...ColOpt) (*Col, error) {
	if v == nil {
		return nil, fmt.Errorf("nil vector to NewColVector")
	}

	c := &Col{Vector: v}
	for _, op := range ops {
		if e := op(c); e != nil {
			return nil, e
		}
	}

	return c, nil
}

// *********** Setters ***********

type ColOpt func(c *Col) error

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.name != "" {
			return fmt.Errorf("column already named -- use Rename method")
		}

		if e := validName(name); e != nil {
			return e
		}

		c.name = name

		return nil
	}
}

// ColNA marks the elements of the column at the given rows as missing.
func ColNA(rows ...int) ColOpt {
	return func(c *Col) error {
		for _, r := range rows {
			if e := c.SetNA(r); e != nil {
				return e
			}
		}

		return nil
	}
}

// *********** Methods ***********

func (c *Col) Copy() Column {
	return &Col{name: c.name, Vector: c.Vector.Copy()}
}

func (c *Col) Data() *Vector {
	return c.Vector
}

func (c *Col) DataType() DataTypes {
	return c.VectorType()
}

func (c *Col) Name() string {
	return c.name
}

func (c *Col) Rename(newName string) error {
	if e := validName(newName); e != nil {
		return e
	}

	c.name = newName

	return nil
}

func (c *Col) String() string {
	t := fmt.Sprintf("column: %s\ntype: %s\nlength: %d\n", c.Name(), c.DataType(), c.Len())
	if n := c.NAcount(); n > 0 {
		t += fmt.Sprintf("missing: %d\n", n)
	}

	return t
}
