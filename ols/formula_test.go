package ols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f, e := Parse("log_dollar ~ C(year) + C(HS2) + log_weight + log_distance")
	require.Nil(t, e)
	assert.Equal(t, "log_dollar", f.Target)
	assert.True(t, f.Intercept)
	assert.Equal(t, []Term{{"year", true}, {"HS2", true}, {"log_weight", false}, {"log_distance", false}}, f.Terms)
	assert.Equal(t, []string{"log_dollar", "year", "HS2", "log_weight", "log_distance"}, f.Columns())
	assert.Equal(t, "log_dollar ~ C(year) + C(HS2) + log_weight + log_distance", f.String())

	f, e = Parse("y~x-1")
	require.Nil(t, e)
	assert.False(t, f.Intercept)
	assert.Equal(t, "y ~ x - 1", f.String())

	f, e = Parse("y ~ 0 + C(g)")
	require.Nil(t, e)
	assert.False(t, f.Intercept)

	f, e = Parse("y ~ 1 + x + x")
	require.Nil(t, e)
	assert.True(t, f.Intercept)
	assert.Len(t, f.Terms, 1)

	f, e = Parse("y ~ 1")
	require.Nil(t, e)
	assert.Empty(t, f.Terms)
}

func TestParse_Errors(t *testing.T) {
	for _, bad := range []string{
		"y x",
		"y ~ x ~ z",
		" ~ x",
		"y ~ ",
		"y ~ x +",
		"y ~ x + + z",
		"y ~ C(x",
		"y ~ C(x))",
		"y ~ log(x)",
		"y ~ x - z",
		"y ~ y",
		"y ~ 0",
		"C(y) ~ x",
	} {
		_, e := Parse(bad)
		assert.ErrorIs(t, e, ErrFormula, bad)
	}
}
