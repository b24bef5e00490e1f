// Package arima fits ARIMA(p,d,q) models by conditional sum of squares and produces
// point forecasts from them.
package arima

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

var (
	ErrInsufficientData = errors.New("insufficient data points for the specified order")
	ErrNotFitted        = errors.New("model must be fitted before prediction")
)

// maxCoef bounds the starting values of the AR and MA coefficients away from the unit circle.
const maxCoef = 0.95

// Order is the (p, d, q) order of a model.
type Order struct {
	P int // autoregressive terms
	D int // differences
	Q int // moving average terms
}

func (o Order) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
}

// Model is an ARIMA model. The exported estimates are populated by Fit.
type Model struct {
	Order    Order
	ARCoeffs []float64
	MACoeffs []float64

	// Intercept is the mean of the differenced series. It is estimated only when D is 0.
	Intercept float64
	Variance  float64
	LogLik    float64
	AIC       float64
	AICc      float64
	BIC       float64

	fitted    bool
	diffData  []float64
	tails     []float64 // last value of the series at each level of differencing
	residuals []float64
}

// New returns an unfitted ARIMA(p,d,q) model.
func New(p, d, q int) *Model {
	return &Model{
		Order:    Order{P: p, D: d, Q: q},
		ARCoeffs: make([]float64, p),
		MACoeffs: make([]float64, q),
	}
}

// MinObs is the fewest observations Fit accepts for the order.
func (m *Model) MinObs() int {
	return m.Order.P + m.Order.D + m.Order.Q + 10
}

// Fit estimates the model from y.
func (m *Model) Fit(y []float64) error {
	if len(y) < m.MinObs() {
		return fmt.Errorf("%s on %d observations: %w", m.Order, len(y), ErrInsufficientData)
	}

	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: series has non-finite values", m.Order)
		}
	}

	m.tails = make([]float64, m.Order.D)

	x := append([]float64{}, y...)
	for ind := 0; ind < m.Order.D; ind++ {
		m.tails[ind] = x[len(x)-1]
		x = diff(x)
	}
	m.diffData = x

	if e := m.fitCSS(); e != nil {
		return e
	}

	m.calculateIC()
	m.fitted = true

	return nil
}

// hasIntercept reports whether the model carries a constant.
func (m *Model) hasIntercept() bool {
	return m.Order.D == 0
}

// fitCSS minimizes the conditional sum of squares with Nelder-Mead. Coefficients are
// searched on the tanh scale so that each stays within (-1, 1).
func (m *Model) fitCSS() error {
	p, q := m.Order.P, m.Order.Q
	y := m.diffData

	mean := 0.0
	if m.hasIntercept() {
		mean = floats.Sum(y) / float64(len(y))
	}

	init := make([]float64, 0, p+q+1)
	phi0 := yuleWalker(acf(y, p), p)
	for _, v := range phi0 {
		init = append(init, math.Atanh(math.Max(-maxCoef, math.Min(maxCoef, v))))
	}

	for ind := 0; ind < q; ind++ {
		init = append(init, math.Atanh(0.1))
	}

	if m.hasIntercept() {
		init = append(init, mean)
	}

	if len(init) == 0 {
		m.Intercept = 0
		m.residuals, _ = m.css(nil, nil, 0)
		m.setVariance()

		return nil
	}

	unpack := func(x []float64) (phi, theta []float64, c float64) {
		phi, theta = make([]float64, p), make([]float64, q)
		for ind := 0; ind < p; ind++ {
			phi[ind] = math.Tanh(x[ind])
		}

		for ind := 0; ind < q; ind++ {
			theta[ind] = math.Tanh(x[p+ind])
		}

		if m.hasIntercept() {
			c = x[p+q]
		}

		return phi, theta, c
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			_, sse := m.css(unpack(x))
			return sse
		},
	}

	settings := &optimize.Settings{FuncEvaluations: 20000}
	result, e := optimize.Minimize(problem, init, settings, &optimize.NelderMead{})
	if result == nil {
		return fmt.Errorf("%s: %w", m.Order, e)
	}

	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return fmt.Errorf("%s: optimizer did not converge", m.Order)
	}

	m.ARCoeffs, m.MACoeffs, m.Intercept = unpack(result.X)
	m.residuals, _ = m.css(m.ARCoeffs, m.MACoeffs, m.Intercept)
	m.setVariance()

	return nil
}

// css returns the one-step residuals of the differenced series and their sum of squares.
// The first p residuals are conditioned to zero, as are all residuals before the sample.
func (m *Model) css(phi, theta []float64, c float64) ([]float64, float64) {
	y := m.diffData
	p, q := len(phi), len(theta)
	resid := make([]float64, len(y))

	sse := 0.0
	for t := p; t < len(y); t++ {
		pred := c
		for ind := 0; ind < p; ind++ {
			pred += phi[ind] * (y[t-ind-1] - c)
		}

		for ind := 0; ind < q && t-ind-1 >= 0; ind++ {
			pred += theta[ind] * resid[t-ind-1]
		}

		resid[t] = y[t] - pred
		sse += resid[t] * resid[t]
	}

	return resid, sse
}

func (m *Model) setVariance() {
	n := len(m.diffData) - m.Order.P
	sse := floats.Dot(m.residuals, m.residuals)

	m.Variance = sse / float64(n)
}

// nParams counts the estimated coefficients, the variance included.
func (m *Model) nParams() int {
	k := m.Order.P + m.Order.Q + 1
	if m.hasIntercept() {
		k++
	}

	return k
}

// calculateIC fills the Gaussian log-likelihood and the information criteria.
func (m *Model) calculateIC() {
	n := float64(len(m.diffData) - m.Order.P)
	k := float64(m.nParams())

	if m.Variance <= 0 {
		m.LogLik = math.Inf(1)
	} else {
		m.LogLik = -n / 2 * (math.Log(2*math.Pi) + math.Log(m.Variance) + 1)
	}

	m.AIC = -2*m.LogLik + 2*k
	m.BIC = -2*m.LogLik + k*math.Log(n)

	m.AICc = math.Inf(1)
	if n-k-1 > 0 {
		m.AICc = m.AIC + 2*k*(k+1)/(n-k-1)
	}
}

// Fitted reports whether Fit has succeeded.
func (m *Model) Fitted() bool {
	return m.fitted
}

// Predict returns point forecasts for the next steps periods on the scale of the original series.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}

	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	y := m.diffData
	n := len(y)
	p, q := m.Order.P, m.Order.Q

	ext := make([]float64, n+steps)
	copy(ext, y)

	res := make([]float64, n+steps)
	copy(res, m.residuals)

	for t := n; t < n+steps; t++ {
		pred := m.Intercept
		for ind := 0; ind < p; ind++ {
			pred += m.ARCoeffs[ind] * (ext[t-ind-1] - m.Intercept)
		}

		for ind := 0; ind < q; ind++ {
			pred += m.MACoeffs[ind] * res[t-ind-1]
		}

		ext[t] = pred
	}

	return m.integrate(ext[n:]), nil
}

// integrate undoes the differencing of forecasts fc.
func (m *Model) integrate(fc []float64) []float64 {
	out := append([]float64{}, fc...)
	for level := m.Order.D - 1; level >= 0; level-- {
		floats.CumSum(out, out)
		floats.AddConst(m.tails[level], out)
	}

	return out
}

// Residuals returns the one-step residuals of the differenced series.
func (m *Model) Residuals() []float64 {
	return append([]float64{}, m.residuals...)
}

// FittedValues returns the in-sample one-step predictions of the differenced series.
func (m *Model) FittedValues() []float64 {
	out := make([]float64, len(m.diffData))
	floats.SubTo(out, m.diffData, m.residuals)

	return out
}

func (m *Model) String() string {
	if !m.fitted {
		return m.Order.String() + " (not fitted)"
	}

	return fmt.Sprintf("%s ar=%v ma=%v intercept=%g sigma2=%g aic=%g", m.Order,
		m.ARCoeffs, m.MACoeffs, m.Intercept, m.Variance, m.AIC)
}
