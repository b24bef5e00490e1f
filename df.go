package hstrade

import (
	"errors"
	"fmt"
)

// ErrNoColumn is returned when a requested column is not in the DF.
var ErrNoColumn = errors.New("column not found")

// DF is an ordered collection of equal-length columns.
type DF struct {
	head    *columnList
	current *columnList
}

type columnList struct {
	col Column

	prior *columnList
	next  *columnList
}

// NewDF makes a DF from cols. The columns must have distinct names and the same length.
func NewDF(cols ...Column) (df *DF, err error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewDF")
	}

	var (
		head, priorNode *columnList
		names           []string
	)
	for ind := 0; ind < len(cols); ind++ {
		if cols[ind].Name() == "" {
			return nil, fmt.Errorf("column %d has no name", ind)
		}

		if has(cols[ind].Name(), names) {
			return nil, fmt.Errorf("duplicate column name: %s", cols[ind].Name())
		}

		if cols[ind].Len() != cols[0].Len() {
			return nil, fmt.Errorf("length mismatch: %s has %d rows, %s has %d",
				cols[0].Name(), cols[0].Len(), cols[ind].Name(), cols[ind].Len())
		}

		names = append(names, cols[ind].Name())
		node := &columnList{
			col: cols[ind],

			prior: priorNode,
			next:  nil,
		}

		if priorNode != nil {
			priorNode.next = node
		}

		priorNode = node

		if ind == 0 {
			head = node
		}
	}

	return &DF{head: head}, nil
}

// ***************** Methods *****************

// Next iterates through the columns. It returns nil after the last column.
func (df *DF) Next(reset bool) Column {
	if reset || df.current == nil {
		df.current = df.head
		if df.current == nil {
			return nil
		}

		return df.current.col
	}

	if df.current.next == nil {
		df.current = nil
		return nil
	}

	df.current = df.current.next
	return df.current.col
}

func (df *DF) RowCount() int {
	if df.head == nil {
		return 0
	}

	return df.head.col.Len()
}

func (df *DF) ColumnCount() int {
	cols := 0
	for c := df.head; c != nil; c = c.next {
		cols++
	}

	return cols
}

func (df *DF) ColumnNames() []string {
	var names []string

	for h := df.head; h != nil; h = h.next {
		names = append(names, h.col.Name())
	}

	return names
}

func (df *DF) Column(colName string) (col Column, err error) {
	var node *columnList
	if node, err = df.node(colName); err != nil {
		return nil, err
	}

	return node.col, nil
}

// AppendColumn adds col to the end of df. If replace is true, a column of the same name is replaced in place.
func (df *DF) AppendColumn(col Column, replace bool) error {
	if col.Len() != df.RowCount() {
		return fmt.Errorf("length mismatch: df - %d, append col - %d", df.RowCount(), col.Len())
	}

	if node, e := df.node(col.Name()); e == nil {
		if !replace {
			return fmt.Errorf("duplicate column name: %s", col.Name())
		}

		node.col = col
		return nil
	}

	var tail *columnList
	for tail = df.head; tail.next != nil; tail = tail.next {
	}

	tail.next = &columnList{
		col:   col,
		prior: tail,
		next:  nil,
	}

	return nil
}

func (df *DF) node(colName string) (node *columnList, err error) {
	for h := df.head; h != nil; h = h.next {
		if h.col.Name() == colName {
			return h, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoColumn, colName)
}

func (df *DF) DropColumns(colNames ...string) error {
	for _, cName := range colNames {
		var (
			node *columnList
			e    error
		)

		if node, e = df.node(cName); e != nil {
			return e
		}

		if node == df.head {
			if df.head.next == nil {
				return fmt.Errorf("cannot drop the last column")
			}

			df.head = df.head.next
			df.head.prior = nil
			continue
		}

		node.prior.next = node.next
		if node.next != nil {
			node.next.prior = node.prior
		}
	}

	df.current = nil

	return nil
}

// KeepColumns returns a DF with colNames in the order given. The columns are shared with df.
func (df *DF) KeepColumns(colNames ...string) (*DF, error) {
	var cols []Column

	for ind := 0; ind < len(colNames); ind++ {
		var (
			col Column
			err error
		)

		if col, err = df.Column(colNames[ind]); err != nil {
			return nil, err
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

// Copy returns a deep copy of df.
func (df *DF) Copy() *DF {
	var cols []Column
	for h := df.head; h != nil; h = h.next {
		cols = append(cols, h.col.Copy())
	}

	dfc, _ := NewDF(cols...)

	return dfc
}

// Where returns a new DF with the rows for which keep is true.
func (df *DF) Where(keep []bool) (*DF, error) {
	var cols []Column
	for h := df.head; h != nil; h = h.next {
		var (
			v *Vector
			e error
		)
		if v, e = h.col.Data().Where(keep); e != nil {
			return nil, e
		}

		col, _ := NewColVector(v, ColName(h.col.Name()))
		cols = append(cols, col)
	}

	return NewDF(cols...)
}

// DropNA returns a new DF without the rows that are missing in any of colNames.
// With no colNames every column is checked.
func (df *DF) DropNA(colNames ...string) (*DF, error) {
	if colNames == nil {
		colNames = df.ColumnNames()
	}

	keep := make([]bool, df.RowCount())
	for ind := range keep {
		keep[ind] = true
	}

	for _, cn := range colNames {
		var (
			col Column
			e   error
		)
		if col, e = df.Column(cn); e != nil {
			return nil, e
		}

		for row := 0; row < col.Len(); row++ {
			if col.Data().IsNA(row) {
				keep[row] = false
			}
		}
	}

	return df.Where(keep)
}

// Row returns the values of row indx in column order. Missing values are nil.
func (df *DF) Row(indx int) ([]any, error) {
	if indx < 0 || indx >= df.RowCount() {
		return nil, fmt.Errorf("row %d out of range", indx)
	}

	var row []any
	for h := df.head; h != nil; h = h.next {
		row = append(row, h.col.Data().Element(indx))
	}

	return row, nil
}

func (df *DF) String() string {
	const maxRows = 10

	var (
		header []string
		vecs   []*Vector
	)

	n := min(df.RowCount(), maxRows)
	keep := make([]bool, df.RowCount())
	for ind := 0; ind < n; ind++ {
		keep[ind] = true
	}

	for h := df.head; h != nil; h = h.next {
		header = append(header, h.col.Name())
		v, _ := h.col.Data().Where(keep)
		vecs = append(vecs, v)
	}

	t := fmt.Sprintf("rows: %d\n", df.RowCount())
	return t + prettyPrint(header, vecs...)
}
