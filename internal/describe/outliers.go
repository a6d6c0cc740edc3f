package describe

import (
	"math"
	"sort"
)

// OutlierReport holds the IQR fences and the count of values strictly
// outside them. Ok is false when the sample is too small for meaningful
// quartiles, in which case zero outliers are reported rather than failing.
type OutlierReport struct {
	Count      int
	LowerFence float64
	UpperFence float64
	Q1         float64
	Q3         float64
	Ok         bool
}

// DetectOutliers flags values outside the inter-quartile range fences.
// Quartiles use linear interpolation between ranks. A constant column
// (IQR = 0) yields zero outliers by definition.
func DetectOutliers(values []float64, fenceMultiplier float64, minSample int) OutlierReport {
	if len(values) < minSample {
		return OutlierReport{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 0.25)
	q3 := percentile(sorted, 0.75)
	iqr := q3 - q1

	report := OutlierReport{
		LowerFence: q1 - fenceMultiplier*iqr,
		UpperFence: q3 + fenceMultiplier*iqr,
		Q1:         q1,
		Q3:         q3,
		Ok:         true,
	}

	for _, v := range values {
		if v < report.LowerFence || v > report.UpperFence {
			report.Count++
		}
	}
	return report
}

// percentile computes the p-th quantile (p in [0,1]) of sorted data using
// linear interpolation between ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
