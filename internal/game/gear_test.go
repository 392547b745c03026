package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveBonusWeapon(t *testing.T) {
	// 100 cost buys 2 points; weapons lean toward money
	bonus, err := DeriveBonus(GearTypeWeapon, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.4, bonus.XP)
	assert.Equal(t, 1.0, bonus.Money)
	assert.Equal(t, 0.2, bonus.Time)
}

func TestDeriveBonusArmor(t *testing.T) {
	// 250 cost buys 5 points; armor leans toward XP
	bonus, err := DeriveBonus(GearTypeArmor, 250)
	require.NoError(t, err)

	assert.Equal(t, 2.5, bonus.XP)
	assert.Equal(t, 1.0, bonus.Money)
	assert.Equal(t, 0.5, bonus.Time)
}

func TestDeriveBonusAccessory(t *testing.T) {
	// 75 cost still buys only 1 whole point
	bonus, err := DeriveBonus(GearTypeAccessory, 75)
	require.NoError(t, err)

	assert.Equal(t, 0.1, bonus.XP)
	assert.Equal(t, 0.2, bonus.Money)
	assert.Equal(t, 0.5, bonus.Time)
}

func TestDeriveBonusUnknownType(t *testing.T) {
	_, err := DeriveBonus("hat", 100)
	assert.Error(t, err)
}

func TestValidGearType(t *testing.T) {
	assert.True(t, ValidGearType(GearTypeWeapon))
	assert.True(t, ValidGearType(GearTypeArmor))
	assert.True(t, ValidGearType(GearTypeAccessory))
	assert.False(t, ValidGearType("hat"))
	assert.False(t, ValidGearType(""))
}
