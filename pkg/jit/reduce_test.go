//go:build (darwin || freebsd || linux) && amd64

package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	f, err := Compile("x*x")
	require.NoError(t, err)
	defer f.Close()

	xs := []float64{0, 1, 2, 3}
	got := f.Map(nil, xs)
	assert.Equal(t, []float64{0, 1, 4, 9}, got)

	// In-place over the input.
	got = f.Map(xs, xs)
	assert.Equal(t, []float64{0, 1, 4, 9}, xs)
	assert.Equal(t, &xs[0], &got[0])

	// A too-short dst is replaced by a fresh allocation, not indexed past
	// its end.
	short := make([]float64, 2)
	got = f.Map(short, []float64{1, 2, 3})
	assert.Equal(t, []float64{1, 4, 9}, got)
	assert.Equal(t, []float64{0, 0}, short)

	assert.Empty(t, f.Map(nil, nil))
}

func TestSum(t *testing.T) {
	f, err := Compile("x")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 0.0, f.Sum(nil))
	assert.Equal(t, 3.0, f.Sum([]float64{1, 2}))
	assert.Equal(t, 6.0, f.Sum([]float64{1, 2, 3}))

	g, err := Compile("2*x")
	require.NoError(t, err)
	defer g.Close()
	assert.Equal(t, 12.0, g.Sum([]float64{1, 2, 3}))
}

func TestTable(t *testing.T) {
	f, err := Compile("x^2")
	require.NoError(t, err)
	defer f.Close()

	got := f.Table(0, 4, 5)
	assert.Equal(t, []float64{0, 1, 4, 9, 16}, got)
}
