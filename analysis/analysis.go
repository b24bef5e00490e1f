// Package analysis runs the trade pipeline: preprocessing, one fixed-effects regression per
// feature set, then a forecast of the target column.
package analysis

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invertedv/hstrade"
	"github.com/invertedv/hstrade/arima"
	"github.com/invertedv/hstrade/logging"
	"github.com/invertedv/hstrade/ols"
)

const (
	DefaultFormula   = "log_dollar ~ C(year) + C(HS2)"
	DefaultOutputDir = "results"
	DefaultTarget    = "log_dollar"
	DefaultSteps     = 5

	// ForecastFile is the name of the forecast workbook within the output directory.
	ForecastFile = "Forecast.xlsx"
)

// baseColumns are always kept by preprocessing, along with the code column.
var baseColumns = []string{"year", "log_dollar", "log_weight"}

// FeatureSet is a named list of covariates added to the base formula.
type FeatureSet struct {
	Name       string   `yaml:"name"`
	Covariates []string `yaml:"covariates"`
}

// FeatureSets run in order.
type FeatureSets []FeatureSet

// DefaultFeatureSets returns Set1 and Set2.
func DefaultFeatureSets() FeatureSets {
	return FeatureSets{
		{Name: "Set1", Covariates: []string{"log_weight", "log_distance"}},
		{Name: "Set2", Covariates: []string{"log_gdp_partner", "log_cpi_us"}},
	}
}

// Formula returns base with the covariates of fs appended.
func (fs FeatureSet) Formula(base string) string {
	if len(fs.Covariates) == 0 {
		return base
	}

	return base + " + " + strings.Join(fs.Covariates, " + ")
}

// FileName is the workbook fs is saved to.
func (fs FeatureSet) FileName() string {
	return fs.Name + "_results.xlsx"
}

// Validate checks that names are usable as workbook and sheet names and are not repeated.
func (fss FeatureSets) Validate() error {
	seen := make(map[string]bool)
	for _, fs := range fss {
		if fs.Name == "" {
			return fmt.Errorf("feature set with no name")
		}

		if strings.ContainsAny(fs.Name, `/\?*:[]`) || len(fs.Name) > 31 {
			return fmt.Errorf("feature set name %q is not a valid sheet name", fs.Name)
		}

		if seen[fs.Name] {
			return fmt.Errorf("duplicate feature set %s", fs.Name)
		}

		seen[fs.Name] = true
	}

	return nil
}

// ***************** Options *****************

type Analyzer struct {
	codeCol   string
	outputDir string
	target    string
	steps     int
	chart     string
	metrics   string
	console   io.Writer
	log       logging.Logger
}

type Opt func(a *Analyzer) error

func WithCodeColumn(name string) Opt {
	return func(a *Analyzer) error {
		if name == "" {
			return fmt.Errorf("empty code column")
		}

		a.codeCol = name
		return nil
	}
}

func WithOutputDir(dir string) Opt {
	return func(a *Analyzer) error {
		if dir == "" {
			return fmt.Errorf("empty output directory")
		}

		a.outputDir = dir
		return nil
	}
}

// WithForecast sets the forecast column and horizon.
func WithForecast(target string, steps int) Opt {
	return func(a *Analyzer) error {
		if target == "" {
			return fmt.Errorf("empty forecast target")
		}

		if steps < 1 {
			return fmt.Errorf("forecast steps must be at least 1, got %d", steps)
		}

		a.target, a.steps = target, steps
		return nil
	}
}

// WithChart also plots the forecast to fileName.
func WithChart(fileName string) Opt {
	return func(a *Analyzer) error {
		a.chart = fileName
		return nil
	}
}

// WithMetricsFile writes run metrics in the Prometheus text format to fileName when the run ends.
func WithMetricsFile(fileName string) Opt {
	return func(a *Analyzer) error {
		a.metrics = fileName
		return nil
	}
}

func WithConsole(console io.Writer) Opt {
	return func(a *Analyzer) error {
		a.console = console
		return nil
	}
}

func WithLogger(log logging.Logger) Opt {
	return func(a *Analyzer) error {
		a.log = log
		return nil
	}
}

func NewAnalyzer(opts ...Opt) (*Analyzer, error) {
	a := &Analyzer{
		codeCol:   hstrade.DefaultCodeColumn,
		outputDir: DefaultOutputDir,
		target:    DefaultTarget,
		steps:     DefaultSteps,
		console:   os.Stdout,
		log:       logging.NewNopLogger(),
	}

	for _, o := range opts {
		if e := o(a); e != nil {
			return nil, e
		}
	}

	return a, nil
}

// ***************** Run *****************

// Keep returns the columns preprocessing retains for sets: the base columns, the code column
// and every covariate, each once in first-seen order.
func (a *Analyzer) Keep(sets FeatureSets) []string {
	var keep []string
	add := func(names ...string) {
		for _, nm := range names {
			if !has(nm, keep) {
				keep = append(keep, nm)
			}
		}
	}

	add(baseColumns...)
	add(a.codeCol)
	for _, fs := range sets {
		add(fs.Covariates...)
	}

	return keep
}

// Run preprocesses df, fits formula plus each feature set and forecasts the target. It stops at
// the first failure; workbooks already written are left in place.
func (a *Analyzer) Run(df *hstrade.DF, formula string, sets FeatureSets) (err error) {
	m := newMetrics()
	if a.metrics != "" {
		defer func() {
			if e := m.write(a.metrics); e != nil {
				a.log.Warn("metrics not written", logging.String("path", a.metrics), logging.Err(e))
			}
		}()
	}

	if err = sets.Validate(); err != nil {
		return err
	}

	if err = os.MkdirAll(a.outputDir, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	start := time.Now()
	var data *hstrade.DF
	if data, err = hstrade.Preprocess(df, a.Keep(sets), a.codeCol); err != nil {
		return err
	}
	m.observe("preprocess", start)
	m.rows.WithLabelValues("kept").Add(float64(data.RowCount()))
	m.rows.WithLabelValues("dropped").Add(float64(df.RowCount() - data.RowCount()))

	a.log.Info("preprocessed", logging.Int("rows", df.RowCount()), logging.Int("kept", data.RowCount()),
		logging.Duration("elapsed", time.Since(start)))

	runner := ols.NewRunner(ols.WithConsole(a.console), ols.WithLogger(a.log))
	for _, fs := range sets {
		start = time.Now()
		_, err = runner.Run(data, fs.Formula(formula), fs.Name, filepath.Join(a.outputDir, fs.FileName()))
		m.model("ols", err)
		m.observe("ols", start)

		if err != nil {
			a.log.Error("feature set failed", err, logging.String("set", fs.Name))
			return err
		}
	}

	fopts := []arima.Opt{arima.WithConsole(a.console), arima.WithLogger(a.log)}
	if a.chart != "" {
		fopts = append(fopts, arima.WithChart(a.chart))
	}

	start = time.Now()
	_, err = arima.NewForecaster(fopts...).Forecast(data, a.target, a.steps, filepath.Join(a.outputDir, ForecastFile))
	m.model("arima", err)
	m.observe("arima", start)

	if err != nil {
		a.log.Error("forecast failed", err, logging.String("target", a.target))
		return err
	}

	a.log.Info("analysis complete", logging.String("output_dir", a.outputDir), logging.Int("feature_sets", len(sets)))

	return nil
}

// AnalyzeData runs an Analyzer built from opts.
func AnalyzeData(df *hstrade.DF, formula string, sets FeatureSets, opts ...Opt) error {
	var (
		a *Analyzer
		e error
	)
	if a, e = NewAnalyzer(opts...); e != nil {
		return e
	}

	return a.Run(df, formula, sets)
}

func has(needle string, haystack []string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}

	return false
}
