package api

import (
	"net/http"
	"testing"

	"questbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCreatesUserOnFirstContact(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/users/profile", map[string]any{
		"discord_id": "1001", "username": "alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, 1, asInt(t, body, "level"))
	assert.Equal(t, 0, asInt(t, body, "xp"))
	assert.Equal(t, 100, asInt(t, body, "money"))
	assert.Equal(t, 30, asInt(t, body, "xp_needed"))

	// Second contact returns the same user with 200
	w = doJSON(t, r, http.MethodPost, "/users/profile", map[string]any{
		"discord_id": "1001", "username": "alice",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileRefreshesUsername(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedUser(t, db, "1001", 1, 0, 100)

	w := doJSON(t, r, http.MethodPost, "/users/profile", map[string]any{
		"discord_id": "1001", "username": "alice_renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice_renamed", decodeBody(t, w)["username"])

	var user domain.User
	require.NoError(t, db.Where("discord_id = ?", "1001").First(&user).Error)
	assert.Equal(t, "alice_renamed", user.Username)
}

func TestProfileRequiresDiscordID(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/users/profile", map[string]any{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLevelUpSpendsXP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedUser(t, db, "1001", 1, 45, 100) // Level 1 costs 30 XP

	w := doJSON(t, r, http.MethodPost, "/users/level_up", map[string]any{"discord_id": "1001"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, 2, asInt(t, body, "level"))
	assert.Equal(t, 15, asInt(t, body, "xp"))
	assert.Equal(t, 36, asInt(t, body, "xp_needed"))
	assert.Equal(t, "Congratulations! You leveled up to level 2.", body["message"])
}

func TestLevelUpRejectsInsufficientXP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedUser(t, db, "1001", 1, 12, 100)

	w := doJSON(t, r, http.MethodPost, "/users/level_up", map[string]any{"discord_id": "1001"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not enough XP to level up. You need 18 more XP.", decodeBody(t, w)["error"])

	// State is untouched on a rejected level up
	var user domain.User
	require.NoError(t, db.Where("discord_id = ?", "1001").First(&user).Error)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 12, user.XP)
}

func TestLeaderboardOrdersByColumn(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedUser(t, db, "1001", 3, 0, 50)
	seedUser(t, db, "1002", 7, 0, 10)
	seedUser(t, db, "1003", 5, 0, 900)

	w := doJSON(t, r, http.MethodGet, "/users/leaderboard/level", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	users, ok := body["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 3)
	assert.Equal(t, "1002", users[0].(map[string]any)["discord_id"])
	assert.Equal(t, "1003", users[1].(map[string]any)["discord_id"])

	w = doJSON(t, r, http.MethodGet, "/users/leaderboard/money", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	users, ok = body["users"].([]any)
	require.True(t, ok)
	assert.Equal(t, "1003", users[0].(map[string]any)["discord_id"])
}
