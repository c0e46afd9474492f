package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{130, 134, 140})

	assert.Equal(t, 3, s.Samples)
	assert.InDelta(t, 134.6667, s.Mean, 1e-3)
	assert.Equal(t, 130.0, s.Min)
	assert.Equal(t, 140.0, s.Max)
	assert.InDelta(t, 5.0332, s.StdDev, 1e-3)
	// t(0.9995, 2) * sd / sqrt(3)
	assert.InDelta(t, 31.599*5.0332/math.Sqrt(3), s.Error, 1e-2)
}

func TestSummarizeSmallSamples(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize([]float64{42})
	assert.Equal(t, Summary{Samples: 1, Mean: 42, Min: 42, Max: 42}, one)
}

func TestSummarizeConstantSamples(t *testing.T) {
	s := Summarize([]float64{7, 7, 7, 7})
	assert.Equal(t, 7.0, s.Mean)
	assert.Zero(t, s.StdDev)
	assert.Zero(t, s.Error)
}

func TestTQuantile(t *testing.T) {
	assert.Equal(t, 636.619, tQuantile(1))
	assert.Equal(t, 5.041, tQuantile(8))
	assert.Equal(t, 3.646, tQuantile(35), "between rows uses the row below")
	assert.Equal(t, 3.373, tQuantile(1000))
	assert.Zero(t, tQuantile(0))
}

func TestTQuantileDecreasing(t *testing.T) {
	prev := math.Inf(1)
	for df := 1; df <= 200; df++ {
		q := tQuantile(df)
		assert.LessOrEqual(t, q, prev, "df=%d", df)
		prev = q
	}
}
