// Command hstrade loads a trade table, fits a fixed-effects regression for each configured
// feature set and forecasts the target. Settings come from HSTRADE_* variables and hstrade.yaml.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/invertedv/hstrade"
	"github.com/invertedv/hstrade/analysis"
	"github.com/invertedv/hstrade/config"
	"github.com/invertedv/hstrade/logging"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

// run returns the process exit code.
func run(stdout, stderr io.Writer) int {
	cfg, err := config.Load("")
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "hstrade: %v\n", err)
		return 1
	}

	log, err := logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format, "hstrade")
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "hstrade: %v\n", err)
		return 1
	}

	start := time.Now()
	df, err := load(cfg.Input)
	if err != nil {
		log.Error("load failed", err, logging.String("source", cfg.Input.Source))
		return 1
	}

	log.Info("data loaded", logging.String("source", cfg.Input.Source), logging.Int("rows", df.RowCount()),
		logging.Int("columns", df.ColumnCount()), logging.Duration("elapsed", time.Since(start)))

	opts := append(cfg.Options(), analysis.WithConsole(stdout), analysis.WithLogger(log))
	if err = analysis.AnalyzeData(df, cfg.Analysis.Formula, cfg.Analysis.FeatureSets, opts...); err != nil {
		log.Error("analysis failed", err)
		return 1
	}

	return 0
}

func load(in config.InputConfig) (*hstrade.DF, error) {
	switch strings.ToLower(in.Source) {
	case config.SourceClickHouse, config.SourcePostgres:
		return hstrade.DBLoad(strings.ToLower(in.Source), in.Host, in.User, in.Password, in.Database, in.Query)
	default:
		return hstrade.LoadCSV(in.Path, hstrade.FileStringCols(in.StringColumns...))
	}
}
