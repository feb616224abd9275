package recovery

import "math"

const (
	DefaultFatigueScale = 100.0
	maxScore            = 100.0
)

type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

func StatusFor(recovery float64) Status {
	switch {
	case recovery >= 70:
		return StatusGreen
	case recovery >= 40:
		return StatusYellow
	default:
		return StatusRed
	}
}

// FatigueScore normalizes raw fatigue into [0, 100].
func FatigueScore(fatigueRaw, scale float64) float64 {
	if math.IsNaN(fatigueRaw) {
		return maxScore
	}
	return clamp(fatigueRaw/scale, 0, maxScore)
}

// Recovery is 100 - fatigue score, clamped to [0, 100].
func Recovery(fatigueScore float64) float64 {
	return clamp(maxScore-fatigueScore, 0, maxScore)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 rounds to 2 decimals for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
