package game

import "math"

// Curve holds the numeric fields derived from an adventure's required level.
type Curve struct {
	XPMin          int // Minimum XP reward
	XPMax          int // Maximum XP reward
	RewardMin      int // Minimum money reward
	RewardMax      int // Maximum money reward
	TimeToComplete int // Seconds to finish
}

// DeriveCurve maps a required level to the reward/XP ranges and completion
// time of an adventure template. Coefficients are monotonic, so min <= max
// holds for every level >= 1 and all outputs are non-negative.
func DeriveCurve(requiredLevel int) Curve {
	l := float64(requiredLevel)
	xpBase := 30 * math.Pow(1.2, l-0.5)  // XP scales geometrically with level
	moneyBase := 40 + (l-1)*15           // Money scales linearly with level
	return Curve{
		XPMin:          int(math.Floor(0.4 * xpBase)),
		XPMax:          int(math.Floor(0.55 * xpBase)),
		RewardMin:      int(math.Floor(0.75 * moneyBase)),
		RewardMax:      int(math.Floor(1.25 * moneyBase)),
		TimeToComplete: int(math.Floor(25*l*l + 125)),
	}
}

// XPNeeded returns the XP required to advance past the given level.
func XPNeeded(level int) int {
	return int(math.Floor(30 * math.Pow(1.2, float64(level-1))))
}
