package arima

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/invertedv/hstrade"
	"github.com/invertedv/hstrade/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeDF(t *testing.T, n int) *hstrade.DF {
	y := simulate(n, 1, 0.4, 0.2, 0, 11)
	for ind := range y {
		y[ind] += 20
	}

	val, e := hstrade.NewCol(y, hstrade.DTfloat, hstrade.ColName("log_dollar"), hstrade.ColNA(3))
	require.Nil(t, e)

	codes := make([]string, n)
	for ind := range codes {
		codes[ind] = strconv.Itoa(100000 + ind)
	}

	code, e := hstrade.NewCol(codes, hstrade.DTstring, hstrade.ColName("HSCode"))
	require.Nil(t, e)

	df, e := hstrade.NewDF(val, code)
	require.Nil(t, e)

	return df
}

func TestForecast(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "Forecast.xlsx")

	fc, e := NewForecaster(WithConsole(&console)).Forecast(tradeDF(t, 50), "log_dollar", 3, path)
	require.Nil(t, e)
	assert.Equal(t, []string{ColForecast}, fc.ColumnNames())
	assert.Equal(t, 3, fc.RowCount())

	assert.Equal(t, "Saved results to "+path+"\nForecast for log_dollar saved to "+path+"\n", console.String())

	sheets, e := xlsx.Sheets(path)
	require.Nil(t, e)
	assert.Equal(t, []string{"log_dollar_Forecast"}, sheets)

	rows, e := xlsx.Load(path, "log_dollar_Forecast")
	require.Nil(t, e)
	require.Len(t, rows, 3)

	col, _ := fc.Column(ColForecast)
	for ind, row := range rows {
		require.Len(t, row, 1)
		v, e := strconv.ParseFloat(row[0], 64)
		require.Nil(t, e)
		assert.InDelta(t, col.Data().Element(ind).(float64), v, 1e-9)
	}
}

func TestForecast_NoPath(t *testing.T) {
	var console bytes.Buffer

	fc, e := Forecast(tradeDF(t, 30), "log_dollar", 5, "", WithConsole(&console), WithOrder(0, 1, 0))
	require.Nil(t, e)
	assert.Equal(t, 5, fc.RowCount())
	assert.Equal(t, "Forecast for log_dollar saved to \n", console.String())
}

func TestForecast_Chart(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "forecast.png")

	_, e := Forecast(tradeDF(t, 40), "log_dollar", 4, "", WithConsole(&bytes.Buffer{}), WithChart(chart))
	require.Nil(t, e)

	info, e := os.Stat(chart)
	require.Nil(t, e)
	assert.Greater(t, info.Size(), int64(0))
}

func TestForecast_Errors(t *testing.T) {
	var console bytes.Buffer
	f := NewForecaster(WithConsole(&console))

	_, e := f.Forecast(tradeDF(t, 30), "nope", 3, "")
	assert.ErrorIs(t, e, hstrade.ErrNoColumn)

	_, e = f.Forecast(tradeDF(t, 30), "HSCode", 3, "")
	assert.NotNil(t, e)

	// 12 observations, one missing
	_, e = f.Forecast(tradeDF(t, 13), "log_dollar", 3, "")
	assert.ErrorIs(t, e, ErrInsufficientData)

	_, e = f.Forecast(tradeDF(t, 30), "log_dollar", 0, "")
	assert.NotNil(t, e)

	assert.Empty(t, console.String())
}
