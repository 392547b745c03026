package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSide(t *testing.T) {
	assert.True(t, ValidSide(SideHeads))
	assert.True(t, ValidSide(SideTails))
	assert.False(t, ValidSide("edge"))
	assert.False(t, ValidSide(""))
}

func TestFlipCoinDrawsBothSides(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		side := FlipCoin()
		assert.True(t, ValidSide(side))
		seen[side] = true
	}
	// 200 fair flips land on both sides for all practical purposes
	assert.True(t, seen[SideHeads])
	assert.True(t, seen[SideTails])
}
