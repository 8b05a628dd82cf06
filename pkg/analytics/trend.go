package analytics

import "math"

type TrendDirection string

const (
	TrendUp           TrendDirection = "up"
	TrendDown         TrendDirection = "down"
	TrendStable       TrendDirection = "stable"
	TrendInsufficient TrendDirection = "insufficient_data"
)

const (
	minTrendPoints       = 4
	stableChangePercent  = 5.0
	recentWindow         = 3
	olderWindowEndOffset = 7
)

type TrendResult struct {
	Direction     TrendDirection `json:"direction"`
	ChangePercent float64        `json:"change_percent"`
}

// Trend compares the mean of the three most recent values with the mean of
// the next four. series must be ordered newest first.
func Trend(series []float64) TrendResult {
	if len(series) < minTrendPoints {
		return TrendResult{Direction: TrendInsufficient}
	}

	recent := mean(series[:recentWindow])
	end := len(series)
	if end > olderWindowEndOffset {
		end = olderWindowEndOffset
	}
	older := mean(series[recentWindow:end])
	if older == 0 {
		return TrendResult{Direction: TrendStable}
	}

	change := (recent - older) / older * 100
	switch {
	case math.Abs(change) < stableChangePercent:
		return TrendResult{Direction: TrendStable, ChangePercent: change}
	case change > 0:
		return TrendResult{Direction: TrendUp, ChangePercent: change}
	default:
		return TrendResult{Direction: TrendDown, ChangePercent: change}
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev uses the population (n) denominator.
func populationStdDev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var acc float64
	for _, v := range values {
		acc += (v - m) * (v - m)
	}
	return math.Sqrt(acc / float64(len(values)))
}
