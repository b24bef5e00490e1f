package ols

import (
	"fmt"
	"io"
	"os"

	"github.com/invertedv/hstrade"
	"github.com/invertedv/hstrade/logging"
	"github.com/invertedv/hstrade/xlsx"
)

// Runner fits a model and writes its parameter table to a workbook.
type Runner struct {
	console io.Writer
	log     logging.Logger
}

type Opt func(r *Runner)

// WithConsole sets where confirmation lines go. The default is stdout.
func WithConsole(console io.Writer) Opt {
	return func(r *Runner) {
		r.console = console
	}
}

func WithLogger(log logging.Logger) Opt {
	return func(r *Runner) {
		r.log = log
	}
}

func NewRunner(opts ...Opt) *Runner {
	r := &Runner{console: os.Stdout, log: logging.NewNopLogger()}
	for _, o := range opts {
		o(r)
	}

	return r
}

// Run fits formula to df and saves the parameter table to savePath in a sheet named label.
func (r *Runner) Run(df *hstrade.DF, formula, label, savePath string) (*Result, error) {
	var (
		res *Result
		tbl *hstrade.DF
		e   error
	)
	if res, e = Fit(df, formula); e != nil {
		return nil, fmt.Errorf("%s: %w", label, e)
	}

	r.log.Info("model fitted", logging.String("label", label), logging.String("formula", res.Formula.String()),
		logging.Int("n", res.N), logging.Int("parameters", len(res.Names)), logging.Float64("r2", res.R2))

	if tbl, e = res.Frame(); e != nil {
		return nil, e
	}

	w := xlsx.NewWriter(xlsx.WithConsole(r.console), xlsx.WithLogger(r.log))
	if e = w.Save(tbl, savePath, label); e != nil {
		return nil, fmt.Errorf("%s: %w", label, e)
	}

	_, _ = fmt.Fprintf(r.console, "Fixed Effects Model Results saved to %s\n", savePath)

	return res, nil
}

// Run fits and saves with the default Runner.
func Run(df *hstrade.DF, formula, label, savePath string) (*Result, error) {
	return NewRunner().Run(df, formula, label, savePath)
}
