package hstrade

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess(t *testing.T) {
	df, e := ReadCSV(strings.NewReader(tradeCSV))
	require.Nil(t, e)

	out, e := Preprocess(df, []string{"year", "log_dollar", "log_weight", "HSCode"}, "")
	require.Nil(t, e)

	assert.Equal(t, []string{"year", "log_dollar", "log_weight", "HSCode", HS2, HS4}, out.ColumnNames())
	// row 2 is missing log_dollar, row 3 log_weight, row 4 HSCode
	assert.Equal(t, 1, out.RowCount())

	hs2, _ := out.Column(HS2)
	hs4, _ := out.Column(HS4)
	assert.Equal(t, []string{"12"}, hs2.Data().AsAny())
	assert.Equal(t, []string{"1205"}, hs4.Data().AsAny())

	// input is not modified
	assert.Equal(t, 4, df.RowCount())
	assert.Equal(t, 5, df.ColumnCount())
}

func TestPreprocess_MissingCode(t *testing.T) {
	df, e := ReadCSV(strings.NewReader(tradeCSV))
	require.Nil(t, e)

	// the code column is not retained, so a missing code survives with "nan" prefixes
	out, e := Preprocess(df, []string{"year", "log_dollar"}, "HSCode")
	require.Nil(t, e)
	assert.Equal(t, []string{"year", "log_dollar", HS2, HS4}, out.ColumnNames())
	assert.Equal(t, 3, out.RowCount())

	hs2, _ := out.Column(HS2)
	hs4, _ := out.Column(HS4)
	assert.Equal(t, []string{"12", "84", "na"}, hs2.Data().AsAny())
	assert.Equal(t, []string{"1205", "8471", "nan"}, hs4.Data().AsAny())
}

func TestPreprocess_ShortCodes(t *testing.T) {
	code, _ := NewCol([]string{"7", "123", ""}, DTstring, ColName("code"))
	df, _ := NewDF(code)

	out, e := Preprocess(df, []string{"code"}, "code")
	require.Nil(t, e)

	hs2, _ := out.Column(HS2)
	hs4, _ := out.Column(HS4)
	assert.Equal(t, []string{"7", "12", ""}, hs2.Data().AsAny())
	assert.Equal(t, []string{"7", "123", ""}, hs4.Data().AsAny())
}

func TestPreprocess_Errors(t *testing.T) {
	df, e := ReadCSV(strings.NewReader(tradeCSV))
	require.Nil(t, e)

	_, e = Preprocess(df, []string{"year", "nope"}, "")
	assert.ErrorIs(t, e, ErrNoColumn)

	_, e = Preprocess(df, []string{"year"}, "nocode")
	assert.ErrorIs(t, e, ErrNoColumn)

	// duplicates and derived names in keep are tolerated
	out, e := Preprocess(df, []string{"year", "year", HS2}, "")
	assert.Nil(t, e)
	assert.Equal(t, []string{"year", HS2, HS4}, out.ColumnNames())
}

func TestPreprocess_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("output is retained columns plus HS2/HS4 with prefixes and no missing values", prop.ForAll(
		func(codes []string, missing []bool) bool {
			n := min(len(codes), len(missing))
			codes, missing = codes[:n], missing[:n]

			vals := make([]float64, n)
			var naRows []int
			for ind := range vals {
				vals[ind] = float64(ind)
				if missing[ind] {
					naRows = append(naRows, ind)
				}
			}

			code, _ := NewCol(codes, DTstring, ColName("HSCode"))
			y, _ := NewCol(vals, DTfloat, ColName("log_dollar"), ColNA(naRows...))
			df, e := NewDF(code, y)
			if e != nil {
				return false
			}

			out, e := Preprocess(df, []string{"HSCode", "log_dollar"}, "HSCode")
			if e != nil {
				t.Logf("preprocess: %v", e)
				return false
			}

			if strings.Join(out.ColumnNames(), ",") != "HSCode,log_dollar,HS2,HS4" {
				return false
			}

			if out.RowCount() != n-len(naRows) {
				return false
			}

			c, _ := out.Column("HSCode")
			l, _ := out.Column("log_dollar")
			h2, _ := out.Column(HS2)
			h4, _ := out.Column(HS4)
			for row := 0; row < out.RowCount(); row++ {
				if l.Data().IsNA(row) || c.Data().IsNA(row) {
					return false
				}

				s := c.Data().ElementString(row)
				if !strings.HasPrefix(s, h2.Data().ElementString(row)) || !strings.HasPrefix(s, h4.Data().ElementString(row)) {
					return false
				}

				if len([]rune(h2.Data().ElementString(row))) != min(2, len([]rune(s))) ||
					len([]rune(h4.Data().ElementString(row))) != min(4, len([]rune(s))) {
					return false
				}
			}

			return true
		},
		gen.SliceOf(gen.NumString()),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
