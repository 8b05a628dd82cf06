package analytics

import "math"

const correlationWindow = 30

// CorrelationMatrix maps each metric pair to its Pearson coefficient.
type CorrelationMatrix map[Metric]map[Metric]float64

// Pearson returns the Pearson correlation of two equal-length series. It
// returns 0 for empty or mismatched input and when either side has no variance.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	mx, my := mean(x), mean(y)
	var num, dx2, dy2 float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		num += dx * dy
		dx2 += dx * dx
		dy2 += dy * dy
	}
	if dx2 == 0 || dy2 == 0 {
		return 0
	}

	r := num / math.Sqrt(dx2*dy2)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Correlations builds the pairwise matrix over CorrelationMetrics from up to
// the 30 most recent samples. Zero values are dropped per metric and each pair
// is truncated to its shorter series. The diagonal is always 1.
func Correlations(samples []Sample) CorrelationMatrix {
	window := headSamples(samples, correlationWindow)
	data := make(map[Metric][]float64, len(CorrelationMetrics))
	for _, m := range CorrelationMetrics {
		data[m] = series(window, m)
	}

	matrix := make(CorrelationMatrix, len(CorrelationMetrics))
	for _, a := range CorrelationMetrics {
		matrix[a] = make(map[Metric]float64, len(CorrelationMetrics))
		for _, b := range CorrelationMetrics {
			if a == b {
				matrix[a][b] = 1
				continue
			}
			n := len(data[a])
			if len(data[b]) < n {
				n = len(data[b])
			}
			matrix[a][b] = Pearson(data[a][:n], data[b][:n])
		}
	}
	return matrix
}
