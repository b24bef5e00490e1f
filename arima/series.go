package arima

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// diff returns the first differences of x.
func diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}

	out := make([]float64, len(x)-1)
	floats.SubTo(out, x[1:], x[:len(x)-1])

	return out
}

// acf returns the sample autocorrelations of x for lags 0 to maxLag, nil if x is constant.
func acf(x []float64, maxLag int) []float64 {
	n := len(x)
	if maxLag >= n {
		maxLag = n - 1
	}

	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(x, nil)
	dev := make([]float64, n)
	copy(dev, x)
	floats.AddConst(-mean, dev)

	variance := floats.Dot(dev, dev)
	if variance == 0 {
		return nil
	}

	out := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		out[k] = floats.Dot(dev[k:], dev[:n-k]) / variance
	}

	return out
}

// yuleWalker solves the Yule-Walker equations for p AR coefficients given autocorrelations r.
// It returns zeros if the system cannot be solved.
func yuleWalker(r []float64, p int) []float64 {
	phi := make([]float64, p)
	if p == 0 || len(r) < p+1 {
		return phi
	}

	toeplitz := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			toeplitz.SetSym(i, j, r[j-i])
		}
	}

	var (
		chol mat.Cholesky
		sol  mat.VecDense
	)
	if ok := chol.Factorize(toeplitz); !ok {
		return phi
	}

	if e := chol.SolveVecTo(&sol, mat.NewVecDense(p, r[1:p+1])); e != nil {
		return phi
	}

	for ind := range phi {
		phi[ind] = sol.AtVec(ind)
	}

	return phi
}
