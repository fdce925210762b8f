package analysis

import (
	"math"
	"sort"
)

// quantile returns the p-quantile of sorted by linear interpolation between
// order statistics at position h = (n-1)p. sorted must be non-empty and ascending.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Bounds are the IQR fences of one numeric column.
type Bounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// Contains reports whether x lies inside the fences, ends included.
func (b Bounds) Contains(x float64) bool {
	return x >= b.Lower && x <= b.Upper
}

// iqrBounds computes the fences for values with multiplier k.
// It returns false when there are no values.
func iqrBounds(values []float64, k float64) (Bounds, bool) {
	if len(values) == 0 {
		return Bounds{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - k*iqr,
		Upper: q3 + k*iqr,
	}, true
}
