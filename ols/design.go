package ols

import (
	"fmt"
	"sort"

	"github.com/invertedv/hstrade"
	"gonum.org/v1/gonum/mat"
)

const interceptName = "Intercept"

// design holds the model matrices built from a DF and a Formula.
type design struct {
	y     *mat.VecDense
	x     *mat.Dense
	names []string
}

// newDesign builds the response vector and design matrix. Rows missing any formula column are dropped.
// Categorical terms are treatment coded against their first level; levels are sorted by value.
// Without an intercept the first categorical term keeps all of its levels.
func newDesign(df *hstrade.DF, f *Formula) (*design, error) {
	var (
		dfm *hstrade.DF
		e   error
	)
	if dfm, e = df.DropNA(f.Columns()...); e != nil {
		return nil, e
	}

	n := dfm.RowCount()
	if n == 0 {
		return nil, fmt.Errorf("no complete rows for %s", f)
	}

	var yc hstrade.Column
	if yc, e = dfm.Column(f.Target); e != nil {
		return nil, e
	}

	if !yc.DataType().IsNumeric() {
		return nil, fmt.Errorf("target %s is not numeric", f.Target)
	}

	var yv []float64
	if yv, e = yc.Data().AsFloat(); e != nil {
		return nil, e
	}

	var (
		cols  [][]float64
		names []string
	)

	if f.Intercept {
		one := make([]float64, n)
		for ind := range one {
			one[ind] = 1
		}

		cols, names = append(cols, one), append(names, interceptName)
	}

	fullRank := !f.Intercept
	for _, t := range f.Terms {
		var col hstrade.Column
		if col, e = dfm.Column(t.Name); e != nil {
			return nil, e
		}

		if !t.Categorical && col.DataType().IsNumeric() {
			var x []float64
			if x, e = col.Data().AsFloat(); e != nil {
				return nil, e
			}

			// copy, AsFloat may share the column's storage
			xc := make([]float64, n)
			copy(xc, x)
			cols, names = append(cols, xc), append(names, t.Name)
			continue
		}

		lvls, labels := levels(col.Data())
		first := 1
		if fullRank {
			first, fullRank = 0, false
		}

		prefix := t.String()
		for l := first; l < len(lvls); l++ {
			dummy := make([]float64, n)
			for row := 0; row < n; row++ {
				if labels[row] == lvls[l] {
					dummy[row] = 1
				}
			}

			name := fmt.Sprintf("%s[T.%s]", prefix, lvls[l])
			if first == 0 {
				name = fmt.Sprintf("%s[%s]", prefix, lvls[l])
			}

			cols, names = append(cols, dummy), append(names, name)
		}
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("no regressors in %s", f)
	}

	x := mat.NewDense(n, len(cols), nil)
	for c, col := range cols {
		x.SetCol(c, col)
	}

	return &design{y: mat.NewVecDense(n, yv), x: x, names: names}, nil
}

// levels returns the distinct values of v in sorted order along with the label of each row.
// Numeric values sort numerically, text sorts lexically.
func levels(v *hstrade.Vector) (lvls, labels []string) {
	labels = v.AsString()

	seen := make(map[string]bool)
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			lvls = append(lvls, l)
		}
	}

	if v.VectorType().IsNumeric() {
		fv, _ := v.AsFloat()
		val := make(map[string]float64)
		for ind, l := range labels {
			val[l] = fv[ind]
		}

		sort.Slice(lvls, func(i, j int) bool { return val[lvls[i]] < val[lvls[j]] })
		return lvls, labels
	}

	sort.Strings(lvls)

	return lvls, labels
}
