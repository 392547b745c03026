package game

import (
	"fmt"
	"math"
	"math/rand"
)

// Symbol is one face of the slot machine.
type Symbol string

// The six-symbol alphabet, ordered from most to least common on reel 3.
const (
	SymbolCherry  Symbol = "cherry"
	SymbolLemon   Symbol = "lemon"
	SymbolOrange  Symbol = "orange"
	SymbolBell    Symbol = "bell"
	SymbolDiamond Symbol = "diamond"
	SymbolSeven   Symbol = "seven"
)

var slotSymbols = []Symbol{
	SymbolCherry, SymbolLemon, SymbolOrange, SymbolBell, SymbolDiamond, SymbolSeven,
}

// Reel 3 weights out of 100; rarer symbols pay more.
var reel3Weights = []int{30, 25, 20, 12, 8, 5}

// Three-of-a-kind payout multipliers.
var triplePayout = map[Symbol]float64{
	SymbolCherry:  2,
	SymbolLemon:   2.5,
	SymbolOrange:  3,
	SymbolBell:    4,
	SymbolDiamond: 6,
	SymbolSeven:   10,
}

var slotEmojis = map[Symbol]string{
	SymbolCherry:  "\U0001F352", // 🍒
	SymbolLemon:   "\U0001F34B", // 🍋
	SymbolOrange:  "\U0001F34A", // 🍊
	SymbolBell:    "\U0001F514", // 🔔
	SymbolDiamond: "\U0001F48E", // 💎
	SymbolSeven:   "7️⃣", // 7️⃣
}

// Emoji returns the display glyph for a symbol.
func (s Symbol) Emoji() string {
	return slotEmojis[s]
}

// Symbols returns the slot alphabet in reel order.
func Symbols() []Symbol {
	return slotSymbols
}

// SpinSlots draws the three reels. Reels 1 and 2 are uniform; reel 3 uses
// the weight vector so high-paying symbols land less often.
func SpinSlots() (Symbol, Symbol, Symbol) {
	s1 := slotSymbols[rand.Intn(len(slotSymbols))]
	s2 := slotSymbols[rand.Intn(len(slotSymbols))]
	return s1, s2, weightedSymbol()
}

// weightedSymbol draws a reel-3 symbol from the weight vector.
func weightedSymbol() Symbol {
	roll := rand.Intn(100)
	total := 0
	for i, w := range reel3Weights {
		total += w
		if roll < total {
			return slotSymbols[i]
		}
	}
	return slotSymbols[len(slotSymbols)-1]
}

// EvaluateSlots scores a spin. Three-of-a-kind combos take priority over the
// first-two-match fallback; anything else is a loss with multiplier 0.
func EvaluateSlots(s1, s2, s3 Symbol) (win bool, multiplier float64, message string) {
	if s1 == s2 && s2 == s3 {
		return true, triplePayout[s1], fmt.Sprintf("Three %ss! You won x%g your bet!", s1, triplePayout[s1])
	}
	if s1 == s2 {
		mult := 1.5
		if s1 == SymbolDiamond || s1 == SymbolSeven {
			mult = 2
		}
		return true, mult, fmt.Sprintf("Two %ss! You won x%g your bet!", s1, mult)
	}
	return false, 0, "No match. Better luck next time!"
}

// Winnings returns the payout for a winning bet, floored to an integer.
func Winnings(bet int, multiplier float64) int {
	return int(math.Floor(float64(bet) * multiplier))
}
