package arima

import (
	"fmt"
	"io"
	"os"

	"github.com/invertedv/hstrade"
	"github.com/invertedv/hstrade/logging"
	"github.com/invertedv/hstrade/xlsx"
)

// ColForecast names the single column of a forecast table.
const ColForecast = "Forecast"

// Forecaster fits an ARIMA model to one column of a DF and saves its forecasts.
type Forecaster struct {
	order   Order
	chart   string
	console io.Writer
	log     logging.Logger
}

type Opt func(f *Forecaster)

// WithOrder sets the model order. The default is ARIMA(1,1,1).
func WithOrder(p, d, q int) Opt {
	return func(f *Forecaster) {
		f.order = Order{P: p, D: d, Q: q}
	}
}

// WithChart also plots the history and the forecasts to fileName.
func WithChart(fileName string) Opt {
	return func(f *Forecaster) {
		f.chart = fileName
	}
}

func WithConsole(console io.Writer) Opt {
	return func(f *Forecaster) {
		f.console = console
	}
}

func WithLogger(log logging.Logger) Opt {
	return func(f *Forecaster) {
		f.log = log
	}
}

func NewForecaster(opts ...Opt) *Forecaster {
	f := &Forecaster{
		order:   Order{P: 1, D: 1, Q: 1},
		console: os.Stdout,
		log:     logging.NewNopLogger(),
	}

	for _, o := range opts {
		o(f)
	}

	return f
}

// Forecast fits the model to column of df, missing values dropped, and returns the next steps forecasts
// as a one-column DF. When savePath is not empty the forecasts are saved to the sheet "<column>_Forecast".
// The confirmation line is printed either way.
func (f *Forecaster) Forecast(df *hstrade.DF, column string, steps int, savePath string) (*hstrade.DF, error) {
	var (
		y   []float64
		fc  []float64
		out *hstrade.DF
		e   error
	)
	if y, e = series(df, column); e != nil {
		return nil, e
	}

	m := New(f.order.P, f.order.D, f.order.Q)
	if e = m.Fit(y); e != nil {
		return nil, fmt.Errorf("forecast %s: %w", column, e)
	}

	if fc, e = m.Predict(steps); e != nil {
		return nil, fmt.Errorf("forecast %s: %w", column, e)
	}

	f.log.Info("forecast model fitted", logging.String("column", column), logging.String("order", f.order.String()),
		logging.Int("n", len(y)), logging.Int("steps", steps), logging.Float64("sigma2", m.Variance),
		logging.Float64("aic", m.AIC))

	col, e := hstrade.NewCol(fc, hstrade.DTfloat, hstrade.ColName(ColForecast))
	if e != nil {
		return nil, e
	}

	if out, e = hstrade.NewDF(col); e != nil {
		return nil, e
	}

	if savePath != "" {
		w := xlsx.NewWriter(xlsx.WithConsole(f.console), xlsx.WithLogger(f.log))
		if e = w.Save(out, savePath, column+"_Forecast"); e != nil {
			return nil, fmt.Errorf("forecast %s: %w", column, e)
		}
	}

	if f.chart != "" {
		if e = f.plot(column, y, fc); e != nil {
			return nil, fmt.Errorf("forecast %s chart: %w", column, e)
		}

		f.log.Info("forecast chart saved", logging.String("path", f.chart))
	}

	_, _ = fmt.Fprintf(f.console, "Forecast for %s saved to %s\n", column, savePath)

	return out, nil
}

func (f *Forecaster) plot(column string, y, fc []float64) error {
	var (
		p *hstrade.Plot
		e error
	)
	if p, e = hstrade.NewPlot(hstrade.PlotTitle(column+" "+f.order.String()), hstrade.PlotXlabel("period"),
		hstrade.PlotYlabel(column)); e != nil {
		return e
	}

	hx := make([]float64, len(y))
	for ind := range hx {
		hx[ind] = float64(ind)
	}

	// the forecast line starts at the last observation
	fx := make([]float64, len(fc)+1)
	fy := make([]float64, len(fc)+1)
	fx[0], fy[0] = hx[len(hx)-1], y[len(y)-1]
	for ind, v := range fc {
		fx[ind+1], fy[ind+1] = float64(len(y)+ind), v
	}

	if e = p.PlotXY(hx, y, "history", "black"); e != nil {
		return e
	}

	if e = p.PlotXY(fx, fy, "forecast", "red"); e != nil {
		return e
	}

	return p.Save(f.chart)
}

// series returns the non-missing values of a numeric column.
func series(df *hstrade.DF, column string) ([]float64, error) {
	var (
		col hstrade.Column
		x   []float64
		e   error
	)
	if col, e = df.Column(column); e != nil {
		return nil, fmt.Errorf("forecast: %w", e)
	}

	if !col.DataType().IsNumeric() {
		return nil, fmt.Errorf("forecast: column %s is %v, not numeric", column, col.DataType())
	}

	v := col.Data()
	if x, e = v.AsFloat(); e != nil {
		return nil, e
	}

	y := make([]float64, 0, len(x))
	for ind, xv := range x {
		if !v.IsNA(ind) {
			y = append(y, xv)
		}
	}

	return y, nil
}

// Forecast runs a Forecaster built from opts.
func Forecast(df *hstrade.DF, column string, steps int, savePath string, opts ...Opt) (*hstrade.DF, error) {
	return NewForecaster(opts...).Forecast(df, column, steps, savePath)
}
