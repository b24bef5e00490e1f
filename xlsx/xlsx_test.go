package xlsx

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/invertedv/hstrade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultDF(t *testing.T) *hstrade.DF {
	feat, _ := hstrade.NewCol([]string{"Intercept", "C(year)[T.2002]", "log_weight"}, hstrade.DTstring, hstrade.ColName("Feature"))
	coef, _ := hstrade.NewCol([]float64{1.5, -0.25, 0.75}, hstrade.DTfloat, hstrade.ColName("Coefficient"))
	se, _ := hstrade.NewCol([]float64{0.1, 0.2, 0.3}, hstrade.DTfloat, hstrade.ColName("StdError"))
	n, _ := hstrade.NewCol([]int{1, 2, 3}, hstrade.DTint, hstrade.ColName("N"), hstrade.ColNA(1))

	df, e := hstrade.NewDF(feat, coef, se, n)
	require.Nil(t, e)

	return df
}

func TestWriter_Save(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "Set1_results.xlsx")

	w := NewWriter(WithConsole(&console))
	require.Nil(t, w.Save(resultDF(t), path, "Set1"))
	assert.Equal(t, "Saved results to "+path+"\n", console.String())

	sheets, e := Sheets(path)
	require.Nil(t, e)
	assert.Equal(t, []string{"Set1"}, sheets)

	rows, e := Load(path, "Set1")
	require.Nil(t, e)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Intercept", "1.5", "0.1", "1"}, rows[0])
	assert.Equal(t, []string{"C(year)[T.2002]", "-0.25", "0.2"}, rows[1][:3])
	assert.Equal(t, []string{"log_weight", "0.75", "0.3", "3"}, rows[2])

	// overwrite
	require.Nil(t, w.Save(resultDF(t), path, "Set2"))
	sheets, _ = Sheets(path)
	assert.Equal(t, []string{"Set2"}, sheets)
}

func TestLoadFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	df := resultDF(t)
	require.Nil(t, NewWriter(WithConsole(&bytes.Buffer{})).Save(df, path, "Out"))

	dfr, e := LoadFrame(path, "", "Feature", "Coefficient", "StdError", "N")
	require.Nil(t, e)
	assert.Equal(t, df.RowCount(), dfr.RowCount())

	for _, cn := range df.ColumnNames() {
		c1, _ := df.Column(cn)
		c2, _ := dfr.Column(cn)
		assert.Equal(t, c1.DataType(), c2.DataType(), cn)
		assert.Equal(t, c1.Data().AsString(), c2.Data().AsString(), cn)
	}

	_, e = LoadFrame(path, "", "Feature")
	assert.NotNil(t, e)
}

func TestSave_Errors(t *testing.T) {
	df := resultDF(t)
	dir := t.TempDir()

	assert.NotNil(t, NewWriter(WithConsole(&bytes.Buffer{})).Save(df, filepath.Join(dir, "missing", "x.xlsx"), "S"))
	assert.NotNil(t, NewWriter(WithConsole(&bytes.Buffer{})).Save(df, filepath.Join(dir, "x.xlsx"), ""))
	assert.NotNil(t, NewWriter(WithConsole(&bytes.Buffer{})).Save(df, filepath.Join(dir, "x.xlsx"), "bad/name"))

	_, e := Load(filepath.Join(dir, "nope.xlsx"), "")
	assert.NotNil(t, e)

	path := filepath.Join(dir, "ok.xlsx")
	require.Nil(t, NewWriter(WithConsole(&bytes.Buffer{})).Save(df, path, "S"))
	_, e = Load(path, "other")
	assert.NotNil(t, e)
}
