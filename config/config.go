// Package config loads the settings of the hstrade command from the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/invertedv/hstrade/analysis"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "HSTRADE"

	// EnvFile names the variable that points at the YAML file.
	EnvFile = "HSTRADE_CONFIG"

	DefaultFile = "hstrade.yaml"
)

// Input sources.
const (
	SourceCSV        = "csv"
	SourceClickHouse = "clickhouse"
	SourcePostgres   = "postgres"
)

type Config struct {
	Input    InputConfig    `yaml:"input" envconfig:"INPUT"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig says where the trade table comes from. Query and the connection fields apply to
// the database sources only.
// Leaf fields take split_words, not envconfig tags, so HSTRADE_INPUT_PATH never falls back to PATH.
type InputConfig struct {
	Source        string   `yaml:"source" split_words:"true" default:"csv"`
	Path          string   `yaml:"path" split_words:"true" default:"data.csv"`
	StringColumns []string `yaml:"string_columns" split_words:"true"`
	Query         string   `yaml:"query" split_words:"true"`
	Host          string   `yaml:"host" split_words:"true"`
	User          string   `yaml:"user" split_words:"true"`
	Password      string   `yaml:"password" split_words:"true"`
	Database      string   `yaml:"database" split_words:"true"`
}

type AnalysisConfig struct {
	Formula     string               `yaml:"formula" split_words:"true" default:"log_dollar ~ C(year) + C(HS2)"`
	CodeColumn  string               `yaml:"code_column" split_words:"true" default:"HSCode"`
	OutputDir   string               `yaml:"output_dir" split_words:"true" default:"results"`
	Target      string               `yaml:"target" split_words:"true" default:"log_dollar"`
	Steps       int                  `yaml:"steps" split_words:"true" default:"5"`
	ChartFile   string               `yaml:"chart_file" split_words:"true"`
	MetricsFile string               `yaml:"metrics_file" split_words:"true"`
	FeatureSets analysis.FeatureSets `yaml:"feature_sets" ignored:"true"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true" default:"info"`
	Format string `yaml:"format" split_words:"true" default:"console"`
}

// Load reads the environment, then the YAML file, whose values win. If file is empty the file
// is taken from HSTRADE_CONFIG, or DefaultFile, and may be absent.
func Load(file string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	required := file != ""
	if file == "" {
		file = FilePath()
	}

	if err := loadFromFile(file, &cfg); err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if cfg.Analysis.FeatureSets == nil {
		cfg.Analysis.FeatureSets = analysis.DefaultFeatureSets()
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// FilePath is the YAML file Load reads when not given one.
func FilePath() string {
	if f := os.Getenv(EnvFile); f != "" {
		return f
	}

	return DefaultFile
}

// loadFromFile overlays the keys present in filePath onto cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	return nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Input.Source) {
	case SourceCSV:
		if c.Input.Path == "" {
			return fmt.Errorf("input path is required for csv input")
		}
	case SourceClickHouse, SourcePostgres:
		if c.Input.Query == "" {
			return fmt.Errorf("input query is required for %s input", c.Input.Source)
		}

		if c.Input.Host == "" {
			return fmt.Errorf("input host is required for %s input", c.Input.Source)
		}
	default:
		return fmt.Errorf("unsupported input source %q", c.Input.Source)
	}

	if c.Analysis.Formula == "" {
		return fmt.Errorf("analysis formula is required")
	}

	if c.Analysis.Steps < 1 {
		return fmt.Errorf("analysis steps must be at least 1, got %d", c.Analysis.Steps)
	}

	if err := c.Analysis.FeatureSets.Validate(); err != nil {
		return err
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}

	return nil
}

// Options returns the analysis options the configuration selects.
func (c *Config) Options() []analysis.Opt {
	opts := []analysis.Opt{
		analysis.WithCodeColumn(c.Analysis.CodeColumn),
		analysis.WithOutputDir(c.Analysis.OutputDir),
		analysis.WithForecast(c.Analysis.Target, c.Analysis.Steps),
	}

	if c.Analysis.ChartFile != "" {
		opts = append(opts, analysis.WithChart(c.Analysis.ChartFile))
	}

	if c.Analysis.MetricsFile != "" {
		opts = append(opts, analysis.WithMetricsFile(c.Analysis.MetricsFile))
	}

	return opts
}
