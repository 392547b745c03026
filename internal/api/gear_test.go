package api

import (
	"net/http"
	"testing"

	"questbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopListFallsBackToDatabase(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedGear(t, db, "Rusty Sword", "weapon", 100)
	seedGear(t, db, "Leather Vest", "armor", 150)

	w := doJSON(t, r, http.MethodGet, "/gear/shop", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	gear, ok := body["gear"].([]any)
	require.True(t, ok)
	assert.Len(t, gear, 2)
}

func TestGearDetail(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedGear(t, db, "Rusty Sword", "weapon", 100)

	w := doJSON(t, r, http.MethodGet, "/gear/detail?name=rusty%20sword", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Rusty Sword", body["name"])
	assert.Equal(t, 1.0, body["money_bonus"])

	w = doJSON(t, r, http.MethodGet, "/gear/detail?name=Excalibur", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPurchaseDebitsAndRecordsOwnership(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	gear := seedGear(t, db, "Rusty Sword", "weapon", 80)
	user := seedUser(t, db, "1001", 1, 0, 100)

	w := doJSON(t, r, http.MethodPost, "/gear/purchase", map[string]any{
		"discord_id": "1001", "gear_name": "Rusty Sword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "You bought Rusty Sword for 80!", body["message"])
	assert.Equal(t, 20, asInt(t, body, "balance"))

	var reloaded domain.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 20, reloaded.Money)

	var count int64
	require.NoError(t, db.Model(&domain.OwnedGear{}).
		Where("user_id = ? AND gear_id = ?", user.ID, gear.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPurchaseRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedGear(t, db, "Rusty Sword", "weapon", 80)
	seedUser(t, db, "1001", 1, 0, 500)

	w := doJSON(t, r, http.MethodPost, "/gear/purchase", map[string]any{
		"discord_id": "1001", "gear_name": "Rusty Sword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/gear/purchase", map[string]any{
		"discord_id": "1001", "gear_name": "Rusty Sword",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You already own this item.", decodeBody(t, w)["error"])
}

func TestPurchaseRejectsInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedGear(t, db, "Dragonbone Blade", "weapon", 900)
	user := seedUser(t, db, "1001", 1, 0, 100)

	w := doJSON(t, r, http.MethodPost, "/gear/purchase", map[string]any{
		"discord_id": "1001", "gear_name": "Dragonbone Blade",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Insufficient funds.", decodeBody(t, w)["error"])

	// Balance and ownership are untouched
	var reloaded domain.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 100, reloaded.Money)

	var count int64
	require.NoError(t, db.Model(&domain.OwnedGear{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPurchaseUnknownGear(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/gear/purchase", map[string]any{
		"discord_id": "1001", "gear_name": "Excalibur",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Gear does not exist.", decodeBody(t, w)["error"])
}

func TestOwnedGearListsItems(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	sword := seedGear(t, db, "Rusty Sword", "weapon", 100)
	vest := seedGear(t, db, "Leather Vest", "armor", 150)
	user := seedUser(t, db, "1001", 1, 0, 100)
	require.NoError(t, db.Create(&domain.OwnedGear{UserID: user.ID, GearID: sword.ID}).Error)
	require.NoError(t, db.Create(&domain.OwnedGear{UserID: user.ID, GearID: vest.ID}).Error)

	w := doJSON(t, r, http.MethodPost, "/gear/owned", map[string]any{"discord_id": "1001"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	gear, ok := body["gear"].([]any)
	require.True(t, ok)
	require.Len(t, gear, 2)
	assert.Equal(t, "Rusty Sword", gear[0].(map[string]any)["name"])
	assert.Equal(t, "Leather Vest", gear[1].(map[string]any)["name"])
}

func TestOwnedGearEmptyForNewUser(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/gear/owned", map[string]any{"discord_id": "1001"})
	require.Equal(t, http.StatusOK, w.Code)
	gear, ok := decodeBody(t, w)["gear"].([]any)
	require.True(t, ok)
	assert.Empty(t, gear)
}

func TestBestGearPicksPerStat(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	// weapon 200: xp 0.8, money 2.0, time 0.4
	sword := seedGear(t, db, "Steel Sword", "weapon", 200)
	// armor 200: xp 2.0, money 0.8, time 0.4
	vest := seedGear(t, db, "Steel Vest", "armor", 200)
	// accessory 50: xp 0.1, money 0.2, time 0.5
	ring := seedGear(t, db, "Copper Ring", "accessory", 50)
	user := seedUser(t, db, "1001", 1, 0, 100)
	for _, g := range []domain.Gear{sword, vest, ring} {
		require.NoError(t, db.Create(&domain.OwnedGear{UserID: user.ID, GearID: g.ID}).Error)
	}

	w := doJSON(t, r, http.MethodPost, "/gear/best", map[string]any{"discord_id": "1001"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Steel Vest", body["best_xp"].(map[string]any)["name"])
	assert.Equal(t, "Steel Sword", body["best_money"].(map[string]any)["name"])
	// Sword and vest tie on time cost; the lower id wins
	assert.Equal(t, "Steel Sword", body["best_time"].(map[string]any)["name"])
}

func TestBestGearWithoutItems(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/gear/best", map[string]any{"discord_id": "1001"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User does not own any gear.", decodeBody(t, w)["error"])
}
