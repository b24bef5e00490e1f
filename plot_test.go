package hstrade

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotXY(t *testing.T) {
	p, e := NewPlot(PlotTitle("This Is A Test"), PlotXlabel("X-Axis"), PlotYlabel("Y-Axis"))
	require.Nil(t, e)

	x := []float64{1, 2, 3, 4}
	assert.Nil(t, p.PlotXY(x, []float64{1, 4, 9, 16}, "s1", "red"))
	assert.Nil(t, p.PlotXY(x, []float64{2, 3, 4, 5}, "s2", ""))
	assert.NotNil(t, p.PlotXY(x, []float64{1}, "bad", "red"))
	assert.NotNil(t, p.PlotXY(nil, nil, "empty", "red"))
	assert.NotNil(t, p.PlotXY(x, x, "s3", "chartreuse"))

	assert.NotNil(t, PlotHeight(10)(p))
	assert.Nil(t, PlotHeight(400)(p))
	assert.Nil(t, PlotWidth(600)(p))

	fileName := filepath.Join(t.TempDir(), "test.png")
	require.Nil(t, p.Save(fileName))

	fi, e := os.Stat(fileName)
	assert.Nil(t, e)
	assert.Greater(t, fi.Size(), int64(0))
}
