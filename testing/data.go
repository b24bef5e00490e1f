// Package testing generates synthetic trade tables for tests of the pipeline.
package testing

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/invertedv/hstrade"
)

// TradeHeader is the column layout of a generated table.
var TradeHeader = []string{"HSCode", "year", "partner", "log_dollar", "log_weight", "log_distance",
	"log_gdp_partner", "log_cpi_us"}

var (
	chapters = []string{"12", "27", "84", "85"}
	partners = []string{"CAN", "MEX", "CHN", "DEU", "JPN"}
)

// True parameters of the generated log_dollar.
const (
	WeightEffect   = 0.8
	DistanceEffect = -0.5
	Intercept      = 2.0
)

// TradeRecords returns n rows of trade records after a header row. Every missingEvery'th row
// has no log_gdp_partner; zero disables that.
//
// log_dollar = Intercept + WeightEffect*log_weight + DistanceEffect*log_distance + year effect + chapter effect + noise
func TradeRecords(n int, seed uint64, missingEvery int) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	fmtF := func(x float64) string {
		return strconv.FormatFloat(x, 'f', 6, 64)
	}

	records := [][]string{TradeHeader}
	for ind := 0; ind < n; ind++ {
		ch := rng.IntN(len(chapters))
		year := 2001 + rng.IntN(5)
		code := chapters[ch] + strconv.Itoa(1000+rng.IntN(9000))

		weight := 8 + 2*rng.NormFloat64()
		distance := 8 + 0.5*rng.NormFloat64()
		gdp := 26 + rng.NormFloat64()
		cpi := math.Log(180+3*float64(year-2001)) + 0.01*rng.NormFloat64()

		dollar := Intercept + WeightEffect*weight + DistanceEffect*distance +
			0.1*float64(year-2001) + 0.3*float64(ch) + 0.2*rng.NormFloat64()

		gdpStr := fmtF(gdp)
		if missingEvery > 0 && ind%missingEvery == missingEvery-1 {
			gdpStr = ""
		}

		records = append(records, []string{code, strconv.Itoa(year), partners[rng.IntN(len(partners))],
			fmtF(dollar), fmtF(weight), fmtF(distance), gdpStr, fmtF(cpi)})
	}

	return records
}

// TradeTable returns TradeRecords as a DF with HSCode read as text.
func TradeTable(n int, seed uint64, missingEvery int) (*hstrade.DF, error) {
	return hstrade.FromRecords(TradeRecords(n, seed, missingEvery), hstrade.FileStringCols("HSCode"))
}

// WriteTradeCSV saves a generated table to fileName.
func WriteTradeCSV(fileName string, n int, seed uint64, missingEvery int) error {
	var (
		df *hstrade.DF
		e  error
	)
	if df, e = TradeTable(n, seed, missingEvery); e != nil {
		return e
	}

	return hstrade.SaveCSV(fileName, df)
}
