package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReelWeightsSumToHundred(t *testing.T) {
	total := 0
	for _, w := range reel3Weights {
		total += w
	}
	assert.Equal(t, 100, total)
	assert.Len(t, reel3Weights, len(slotSymbols))
}

func TestEvaluateSlotsTriple(t *testing.T) {
	win, mult, _ := EvaluateSlots(SymbolSeven, SymbolSeven, SymbolSeven)
	assert.True(t, win)
	assert.Equal(t, 10.0, mult)

	win, mult, _ = EvaluateSlots(SymbolCherry, SymbolCherry, SymbolCherry)
	assert.True(t, win)
	assert.Equal(t, 2.0, mult)
}

func TestEvaluateSlotsTwoMatch(t *testing.T) {
	win, mult, _ := EvaluateSlots(SymbolCherry, SymbolCherry, SymbolLemon)
	assert.True(t, win)
	assert.Equal(t, 1.5, mult)

	// Premium symbols pay double on a two-match
	win, mult, _ = EvaluateSlots(SymbolDiamond, SymbolDiamond, SymbolBell)
	assert.True(t, win)
	assert.Equal(t, 2.0, mult)

	win, mult, _ = EvaluateSlots(SymbolSeven, SymbolSeven, SymbolCherry)
	assert.True(t, win)
	assert.Equal(t, 2.0, mult)
}

func TestEvaluateSlotsLoss(t *testing.T) {
	// Only the first two reels count for the partial match
	win, mult, _ := EvaluateSlots(SymbolCherry, SymbolLemon, SymbolCherry)
	assert.False(t, win)
	assert.Equal(t, 0.0, mult)

	win, mult, _ = EvaluateSlots(SymbolCherry, SymbolLemon, SymbolOrange)
	assert.False(t, win)
	assert.Equal(t, 0.0, mult)
}

func TestTriplePayoutOrdering(t *testing.T) {
	// Rarer symbols pay strictly more
	prev := 0.0
	for _, symbol := range slotSymbols {
		assert.Greater(t, triplePayout[symbol], prev, "payout for %s", symbol)
		prev = triplePayout[symbol]
	}
}

func TestWinnings(t *testing.T) {
	assert.Equal(t, 125, Winnings(50, 2.5))
	assert.Equal(t, 49, Winnings(33, 1.5))
	assert.Equal(t, 0, Winnings(10, 0))
}

func TestSpinSlotsDrawsKnownSymbols(t *testing.T) {
	known := map[Symbol]bool{}
	for _, symbol := range slotSymbols {
		known[symbol] = true
	}
	for i := 0; i < 100; i++ {
		s1, s2, s3 := SpinSlots()
		assert.True(t, known[s1])
		assert.True(t, known[s2])
		assert.True(t, known[s3])
	}
}

func TestSymbolEmoji(t *testing.T) {
	for _, symbol := range slotSymbols {
		assert.NotEmpty(t, symbol.Emoji())
	}
}
