package main

import (
	"bytes"
	"path/filepath"
	"testing"

	ht "github.com/invertedv/hstrade/testing"
	"github.com/invertedv/hstrade/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	out := filepath.Join(dir, "results")
	require.Nil(t, ht.WriteTradeCSV(data, 150, 3, 0))

	t.Setenv("HSTRADE_CONFIG", filepath.Join(dir, "absent.yaml"))
	t.Setenv("HSTRADE_INPUT_PATH", data)
	t.Setenv("HSTRADE_INPUT_STRING_COLUMNS", "HSCode")
	t.Setenv("HSTRADE_ANALYSIS_OUTPUT_DIR", out)
	t.Setenv("HSTRADE_LOGGING_FORMAT", "json")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run(&stdout, &stderr), stderr.String())

	assert.Contains(t, stdout.String(), "Fixed Effects Model Results saved to "+filepath.Join(out, "Set1_results.xlsx"))
	assert.Contains(t, stdout.String(), "Fixed Effects Model Results saved to "+filepath.Join(out, "Set2_results.xlsx"))
	assert.Contains(t, stdout.String(), "Forecast for log_dollar saved to "+filepath.Join(out, "Forecast.xlsx"))
	assert.Contains(t, stderr.String(), `"message":"data loaded"`)

	rows, err := xlsx.Load(filepath.Join(out, "Forecast.xlsx"), "log_dollar_Forecast")
	require.Nil(t, err)
	assert.Len(t, rows, 5)
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HSTRADE_CONFIG", filepath.Join(dir, "absent.yaml"))
	t.Setenv("HSTRADE_INPUT_PATH", filepath.Join(dir, "missing.csv"))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(&stdout, &stderr))
	assert.Contains(t, stderr.String(), "load failed")

	t.Setenv("HSTRADE_LOGGING_LEVEL", "loud")
	assert.Equal(t, 1, run(&stdout, &stderr))

	t.Setenv("HSTRADE_INPUT_SOURCE", "oracle")
	assert.Equal(t, 1, run(&stdout, &stderr))
	assert.Empty(t, stdout.String())
}
