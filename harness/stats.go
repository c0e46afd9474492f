package harness

import (
	"math"
	"slices"
)

// Confidence is the two-sided confidence level of Summary.Error.
const Confidence = 0.999

// tTable holds Student's t quantiles at 0.9995 (two-sided 99.9%) by degrees
// of freedom. Degrees of freedom between rows, or past the last row, use the
// nearest row below, which only widens the interval.
var tTable = []struct {
	df int
	t  float64
}{
	{1, 636.619}, {2, 31.599}, {3, 12.924}, {4, 8.610}, {5, 6.869},
	{6, 5.959}, {7, 5.408}, {8, 5.041}, {9, 4.781}, {10, 4.587},
	{11, 4.437}, {12, 4.318}, {13, 4.221}, {14, 4.140}, {15, 4.073},
	{16, 4.015}, {17, 3.965}, {18, 3.922}, {19, 3.883}, {20, 3.850},
	{21, 3.819}, {22, 3.792}, {23, 3.768}, {24, 3.745}, {25, 3.725},
	{26, 3.707}, {27, 3.690}, {28, 3.674}, {29, 3.659}, {30, 3.646},
	{40, 3.551}, {60, 3.460}, {120, 3.373},
}

func tQuantile(df int) float64 {
	for i := len(tTable) - 1; i >= 0; i-- {
		if tTable[i].df <= df {
			return tTable[i].t
		}
	}
	return 0
}

// Summary is the statistical digest of a sample of iteration scores.
type Summary struct {
	Samples int     `json:"samples" yaml:"samples"`
	Mean    float64 `json:"mean" yaml:"mean"`
	Error   float64 `json:"error" yaml:"error"`
	StdDev  float64 `json:"stddev" yaml:"stddev"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
}

// Summarize computes the mean, sample standard deviation and 99.9%
// confidence half-width of samples. StdDev and Error are 0 with fewer than
// two samples; an empty sample summarizes to all zeros.
func Summarize(samples []float64) Summary {
	s := Summary{Samples: len(samples)}
	if len(samples) == 0 {
		return s
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	s.Mean = sum / float64(len(samples))
	s.Min = slices.Min(samples)
	s.Max = slices.Max(samples)

	if len(samples) < 2 {
		return s
	}
	var sq float64
	for _, v := range samples {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(samples)-1))
	s.Error = tQuantile(len(samples)-1) * s.StdDev / math.Sqrt(float64(len(samples)))
	return s
}
