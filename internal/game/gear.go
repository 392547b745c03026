package game

import (
	"fmt"
	"math"
)

// Gear categories sold in the shop.
const (
	GearTypeWeapon    = "weapon"
	GearTypeArmor     = "armor"
	GearTypeAccessory = "accessory"
)

// Cost points: every 50 money of cost buys one bonus point.
const gearPointCost = 50

// Bonus is the stat bonus triple carried by a piece of gear, in percent.
// Time is a cost rather than a gain, so lower is better there.
type Bonus struct {
	XP    float64
	Money float64
	Time  float64
}

// Per-point multipliers per category. Weapons lean toward money, armor
// toward XP, accessories toward time, so no category dominates every stat.
var gearMultipliers = map[string]Bonus{
	GearTypeWeapon:    {XP: 0.2, Money: 0.5, Time: 0.1},
	GearTypeArmor:     {XP: 0.5, Money: 0.2, Time: 0.1},
	GearTypeAccessory: {XP: 0.1, Money: 0.2, Time: 0.5},
}

// ValidGearType reports whether t names a known gear category.
func ValidGearType(t string) bool {
	_, ok := gearMultipliers[t]
	return ok
}

// DeriveBonus maps a gear category and cost to its bonus triple.
// Each stat is points * multiplier, rounded to one decimal place.
func DeriveBonus(gearType string, cost int) (Bonus, error) {
	mult, ok := gearMultipliers[gearType]
	if !ok {
		return Bonus{}, fmt.Errorf("unknown gear type %q", gearType)
	}
	points := float64(cost / gearPointCost)
	return Bonus{
		XP:    round1(points * mult.XP),
		Money: round1(points * mult.Money),
		Time:  round1(points * mult.Time),
	}, nil
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
