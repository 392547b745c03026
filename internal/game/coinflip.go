package game

import "math/rand"

// Coin sides accepted by the coinflip endpoint.
const (
	SideHeads = "heads"
	SideTails = "tails"
)

// ValidSide reports whether s is a valid coin side.
func ValidSide(s string) bool {
	return s == SideHeads || s == SideTails
}

// FlipCoin draws a fair coin.
func FlipCoin() string {
	if rand.Intn(2) == 0 {
		return SideHeads
	}
	return SideTails
}
