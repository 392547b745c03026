package game

import "math/rand"

// Critical roll thresholds on a 0..100 roll.
const (
	critDoubleBelow = 5  // roll < 5: rewards doubled
	critBonusBelow  = 10 // roll < 10: rewards increased by half
)

// Completion messages, rendered verbatim by the bot.
const (
	MsgCritical = "Critical success! Double rewards!"
	MsgBonus    = "Success! Rewards increased by 50%!"
	MsgComplete = "Adventure completed successfully!"
)

// RewardRoll is the outcome of completing an adventure.
type RewardRoll struct {
	XP      int
	Money   int
	Message string
}

// RollReward draws XP and money rewards uniformly from the template's
// ranges and applies the critical-roll table.
func RollReward(xpMin, xpMax, rewardMin, rewardMax int) RewardRoll {
	xp := randRange(xpMin, xpMax)
	money := randRange(rewardMin, rewardMax)
	return ApplyCrit(rand.Intn(101), xp, money)
}

// ApplyCrit applies the critical-roll table to a base reward. Exposed
// separately so the table is testable without randomness.
func ApplyCrit(roll, xp, money int) RewardRoll {
	switch {
	case roll < critDoubleBelow:
		return RewardRoll{XP: xp * 2, Money: money * 2, Message: MsgCritical}
	case roll < critBonusBelow:
		return RewardRoll{XP: xp * 3 / 2, Money: money * 3 / 2, Message: MsgBonus}
	default:
		return RewardRoll{XP: xp, Money: money, Message: MsgComplete}
	}
}

// randRange draws uniformly from [min, max] inclusive.
func randRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}
