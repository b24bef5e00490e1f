package hstrade

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tradeCSV = `HSCode,year,log_dollar,log_weight,partner
120590,2001,10.5,3.2,CAN
0101,2002,NA,3.1,MEX
847130,2003,11.25,,"KOR, REP"
,2004,9.75,2.9,
`

func TestReadCSV(t *testing.T) {
	df, e := ReadCSV(strings.NewReader(tradeCSV))
	require.Nil(t, e)

	assert.Equal(t, []string{"HSCode", "year", "log_dollar", "log_weight", "partner"}, df.ColumnNames())
	assert.Equal(t, 4, df.RowCount())

	code, _ := df.Column("HSCode")
	assert.Equal(t, DTint, code.DataType())
	assert.Equal(t, []string{"120590", "101", "847130", NAstring}, code.Data().AsString())

	year, _ := df.Column("year")
	assert.Equal(t, DTint, year.DataType())

	ld, _ := df.Column("log_dollar")
	assert.Equal(t, DTfloat, ld.DataType())
	assert.True(t, ld.Data().IsNA(1))

	lw, _ := df.Column("log_weight")
	assert.True(t, lw.Data().IsNA(2))

	p, _ := df.Column("partner")
	assert.Equal(t, DTstring, p.DataType())
	assert.Equal(t, "KOR, REP", p.Data().Element(2))
	assert.True(t, p.Data().IsNA(3))
}

func TestReadCSV_Options(t *testing.T) {
	df, e := ReadCSV(strings.NewReader(tradeCSV), FileStringCols("HSCode"))
	require.Nil(t, e)
	code, _ := df.Column("HSCode")
	assert.Equal(t, DTstring, code.DataType())
	assert.Equal(t, "0101", code.Data().Element(1))

	df, e = ReadCSV(strings.NewReader("1;2\n3;x\n"), FileSep(';'), FileHeader(false), FileFieldNames("a", "b"))
	require.Nil(t, e)
	assert.Equal(t, []string{"a", "b"}, df.ColumnNames())
	b, _ := df.Column("b")
	assert.Equal(t, DTstring, b.DataType())

	_, e = ReadCSV(strings.NewReader("1,2\n"), FileHeader(false))
	assert.NotNil(t, e)

	_, e = NewFiles(FileSep('\n'))
	assert.NotNil(t, e)

	_, e = NewFiles(FileFloatFormat("f"))
	assert.NotNil(t, e)
}

func TestLoadSaveCSV(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "data.csv")

	df, e := ReadCSV(strings.NewReader(tradeCSV))
	require.Nil(t, e)
	require.Nil(t, SaveCSV(fileName, df))

	data, e := os.ReadFile(fileName)
	require.Nil(t, e)
	assert.True(t, strings.HasPrefix(string(data), "HSCode,year,log_dollar,log_weight,partner\n"))
	assert.Contains(t, string(data), `"KOR, REP"`)

	dfr, e := LoadCSV(fileName)
	require.Nil(t, e)
	assert.Equal(t, df.ColumnNames(), dfr.ColumnNames())
	assert.Equal(t, df.RowCount(), dfr.RowCount())

	for _, cn := range df.ColumnNames() {
		c1, _ := df.Column(cn)
		c2, _ := dfr.Column(cn)
		assert.Equal(t, c1.Data().AsString(), c2.Data().AsString(), cn)
	}

	_, e = LoadCSV(filepath.Join(dir, "nope.csv"))
	assert.NotNil(t, e)

	assert.NotNil(t, SaveCSV(filepath.Join(dir, "nope", "x.csv"), df))
}
