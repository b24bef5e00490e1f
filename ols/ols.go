// Package ols fits linear models by ordinary least squares from R-style formulas,
// including fixed effects entered as categorical terms.
package ols

import (
	"errors"
	"fmt"
	"math"

	"github.com/invertedv/hstrade"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrSingular is returned when the design matrix does not have full column rank.
var ErrSingular = errors.New("singular design matrix")

// maxCond is the largest condition number of X'X accepted as nonsingular.
const maxCond = 1e14

// Result column names.
const (
	ColFeature     = "Feature"
	ColCoefficient = "Coefficient"
	ColStdError    = "StdError"
	ColPValue      = "PValue"
)

// Result is a fitted model.
type Result struct {
	Formula *Formula

	Names  []string
	Coef   []float64
	StdErr []float64
	TStat  []float64
	PValue []float64

	// N is the number of observations used; DFResid is N less the number of parameters.
	N       int
	DFResid int
	SSE     float64
	Sigma2  float64
	R2      float64
}

// Fit fits the model described by formula to df.
func Fit(df *hstrade.DF, formula string) (*Result, error) {
	var (
		f *Formula
		e error
	)
	if f, e = Parse(formula); e != nil {
		return nil, e
	}

	return FitFormula(df, f)
}

// FitFormula fits a parsed formula to df.
func FitFormula(df *hstrade.DF, f *Formula) (*Result, error) {
	var (
		d *design
		e error
	)
	if d, e = newDesign(df, f); e != nil {
		return nil, e
	}

	n, k := d.x.Dims()
	if n <= k {
		return nil, fmt.Errorf("%s: %d observations for %d parameters", f, n, k)
	}

	var xtx mat.SymDense
	xtx.SymOuterK(1, d.x.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok || chol.Cond() > maxCond {
		return nil, fmt.Errorf("%s: %w", f, ErrSingular)
	}

	var xty, beta mat.VecDense
	xty.MulVec(d.x.T(), d.y)
	if e = chol.SolveVecTo(&beta, &xty); e != nil {
		return nil, fmt.Errorf("%s: %w", f, ErrSingular)
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(d.x, &beta)
	resid.SubVec(d.y, &fitted)
	sse := mat.Dot(&resid, &resid)

	var inv mat.SymDense
	if e = chol.InverseTo(&inv); e != nil {
		return nil, fmt.Errorf("%s: %w", f, ErrSingular)
	}

	r := &Result{
		Formula: f,
		Names:   d.names,
		Coef:    make([]float64, k),
		StdErr:  make([]float64, k),
		TStat:   make([]float64, k),
		PValue:  make([]float64, k),
		N:       n,
		DFResid: n - k,
		SSE:     sse,
		Sigma2:  sse / float64(n-k),
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.DFResid)}
	for ind := 0; ind < k; ind++ {
		r.Coef[ind] = beta.AtVec(ind)
		r.StdErr[ind] = math.Sqrt(r.Sigma2 * inv.At(ind, ind))
		r.TStat[ind] = r.Coef[ind] / r.StdErr[ind]
		r.PValue[ind] = 2 * tDist.Survival(math.Abs(r.TStat[ind]))
	}

	r.R2 = rSquared(d.y, sse, f.Intercept)

	return r, nil
}

// Frame returns one row per parameter: feature name, coefficient, standard error and p-value.
func (r *Result) Frame() (*hstrade.DF, error) {
	feat, e := hstrade.NewCol(r.Names, hstrade.DTstring, hstrade.ColName(ColFeature))
	if e != nil {
		return nil, e
	}

	var cols []hstrade.Column
	cols = append(cols, feat)
	for _, c := range []struct {
		name string
		vals []float64
	}{{ColCoefficient, r.Coef}, {ColStdError, r.StdErr}, {ColPValue, r.PValue}} {
		col, e := hstrade.NewCol(c.vals, hstrade.DTfloat, hstrade.ColName(c.name))
		if e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return hstrade.NewDF(cols...)
}

// Coefficient returns the estimate for the named parameter.
func (r *Result) Coefficient(name string) (float64, bool) {
	for ind, nm := range r.Names {
		if nm == name {
			return r.Coef[ind], true
		}
	}

	return 0, false
}

// rSquared is centered when the model has an intercept, uncentered otherwise.
func rSquared(y *mat.VecDense, sse float64, centered bool) float64 {
	n := y.Len()

	mean := 0.0
	if centered {
		mean = mat.Sum(y) / float64(n)
	}

	sst := 0.0
	for ind := 0; ind < n; ind++ {
		dev := y.AtVec(ind) - mean
		sst += dev * dev
	}

	if sst == 0 {
		return math.NaN()
	}

	return 1 - sse/sst
}
