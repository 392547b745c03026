package api

import (
	"net/http"
	"testing"

	"questbot/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newAdminRouter wires the management routes without the auth middleware
// so the handlers can be exercised directly
func newAdminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rdb := newTestRedis()
	r := gin.New()

	r.POST("/admin/adventures", CreateAdventureHandler(db, rdb))
	r.PUT("/admin/adventures/:name", UpdateAdventureHandler(db, rdb))
	r.POST("/admin/gear", CreateGearHandler(db, rdb))
	r.PUT("/admin/gear/:name", UpdateGearHandler(db, rdb))
	r.POST("/admin/give_money", GiveMoneyHandler(db))
	r.POST("/admin/give_xp", GiveXPHandler(db))
	r.DELETE("/admin/users/:discord_id", DeleteUserHandler(db))
	r.GET("/admin/users", ListUsersHandler(db, rdb))

	return r
}

func TestCreateAdventureDerivesFields(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	w := doJSON(t, r, http.MethodPost, "/admin/adventures", map[string]any{
		"name": "Rat Cellar", "description": "Rats.", "required_level": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, 13, asInt(t, body, "xp_min"))
	assert.Equal(t, 18, asInt(t, body, "xp_max"))
	assert.Equal(t, 30, asInt(t, body, "reward_min"))
	assert.Equal(t, 50, asInt(t, body, "reward_max"))
	assert.Equal(t, 150, asInt(t, body, "time_to_complete"))

	// Duplicate names are rejected
	w = doJSON(t, r, http.MethodPost, "/admin/adventures", map[string]any{
		"name": "Rat Cellar", "required_level": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAdventureRederivesFields(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)
	seedAdventure(t, db, "Rat Cellar", 1)

	w := doJSON(t, r, http.MethodPut, "/admin/adventures/rat%20cellar", map[string]any{
		"name": "Rat Cellar", "description": "Deeper rats.", "required_level": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, 2, asInt(t, body, "required_level"))
	assert.Equal(t, 225, asInt(t, body, "time_to_complete"))
	assert.Equal(t, 15, asInt(t, body, "xp_min"))

	// Unknown templates cannot be edited
	w = doJSON(t, r, http.MethodPut, "/admin/adventures/Atlantis", map[string]any{
		"name": "Atlantis", "required_level": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateGearDerivesBonuses(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	w := doJSON(t, r, http.MethodPost, "/admin/gear", map[string]any{
		"name": "Rusty Sword", "description": "Rusty.", "gear_type": "weapon", "cost": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, 0.4, body["xp_bonus"])
	assert.Equal(t, 1.0, body["money_bonus"])
	assert.Equal(t, 0.2, body["time_bonus"])

	// Unknown categories are rejected
	w = doJSON(t, r, http.MethodPost, "/admin/gear", map[string]any{
		"name": "Top Hat", "gear_type": "hat", "cost": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateGearRederivesBonuses(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)
	seedGear(t, db, "Rusty Sword", "weapon", 100)

	w := doJSON(t, r, http.MethodPut, "/admin/gear/Rusty%20Sword", map[string]any{
		"name": "Rusty Sword", "gear_type": "armor", "cost": 200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "armor", body["gear_type"])
	assert.Equal(t, 2.0, body["xp_bonus"])
	assert.Equal(t, 0.8, body["money_bonus"])
}

func TestGiveMoneyAndXP(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)
	user := seedUser(t, db, "1001", 1, 0, 100)

	w := doJSON(t, r, http.MethodPost, "/admin/give_money", map[string]any{
		"discord_id": "1001", "amount": 250,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 350, asInt(t, decodeBody(t, w), "balance"))

	w = doJSON(t, r, http.MethodPost, "/admin/give_xp", map[string]any{
		"discord_id": "1001", "amount": 40,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 40, asInt(t, decodeBody(t, w), "xp"))

	var reloaded domain.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 350, reloaded.Money)
	assert.Equal(t, 40, reloaded.XP)
}

func TestGrantRejectsUnknownUserAndBadAmount(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)
	seedUser(t, db, "1001", 1, 0, 100)

	// Grants never create users
	w := doJSON(t, r, http.MethodPost, "/admin/give_money", map[string]any{
		"discord_id": "9999", "amount": 10,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/give_money", map[string]any{
		"discord_id": "1001", "amount": -5,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Amount must be a positive integer.", decodeBody(t, w)["error"])
}

func TestDeleteUserRemovesDependents(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)
	adventure := seedAdventure(t, db, "Rat Cellar", 1)
	gear := seedGear(t, db, "Rusty Sword", "weapon", 100)
	user := seedUser(t, db, "1001", 1, 0, 100)
	require.NoError(t, db.Create(&domain.ActiveAdventure{UserID: user.ID, AdventureID: adventure.ID, TimeLeft: 150}).Error)
	require.NoError(t, db.Create(&domain.OwnedGear{UserID: user.ID, GearID: gear.ID}).Error)

	w := doJSON(t, r, http.MethodDelete, "/admin/users/1001", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users, actives, owned int64
	require.NoError(t, db.Model(&domain.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&domain.ActiveAdventure{}).Count(&actives).Error)
	require.NoError(t, db.Model(&domain.OwnedGear{}).Count(&owned).Error)
	assert.EqualValues(t, 0, users)
	assert.EqualValues(t, 0, actives)
	assert.EqualValues(t, 0, owned)

	// Deleting again reports not found
	w = doJSON(t, r, http.MethodDelete, "/admin/users/1001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsersPaginates(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)
	for _, id := range []string{"1001", "1002", "1003"} {
		seedUser(t, db, id, 1, 0, 100)
	}

	w := doJSON(t, r, http.MethodGet, "/admin/users?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users, ok := body["users"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 2)
	assert.Equal(t, 3, asInt(t, body, "total"))
	assert.Equal(t, 2, asInt(t, body, "total_pages"))

	w = doJSON(t, r, http.MethodGet, "/admin/users?page=2&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users, ok = decodeBody(t, w)["users"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 1)
}
