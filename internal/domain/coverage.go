package domain

import (
	"math"
	"strconv"
)

// Percentage returns value/total*100 with one decimal place, or "0.0" when
// total is zero. Halves round up, so 1/16 is "6.3".
func Percentage(value, total int) string {
	if total <= 0 {
		return "0.0"
	}
	pct := float64(value) / float64(total) * 100
	return strconv.FormatFloat(math.Round(pct*10)/10, 'f', 1, 64)
}

// Tier buckets a coverage percentage for presentation.
type Tier int

const (
	TierLow Tier = iota
	TierFair
	TierGood
	TierExcellent
)

func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	case TierFair:
		return "fair"
	default:
		return "low"
	}
}

// TierFor maps a percentage onto the 80/60/40 thresholds.
func TierFor(pct float64) Tier {
	switch {
	case pct >= 80:
		return TierExcellent
	case pct >= 60:
		return TierGood
	case pct >= 40:
		return TierFair
	default:
		return TierLow
	}
}

// TierForPercentage classifies a string produced by Percentage. The rounded
// value is what the reader sees, so it is what gets classified.
func TierForPercentage(pct string) Tier {
	return TierFor(ParsePercentage(pct))
}

// ParsePercentage reads back a string produced by Percentage. Malformed
// input reads as zero.
func ParsePercentage(pct string) float64 {
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return 0
	}
	return v
}
