package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"questbot/internal/domain"
	"questbot/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Adventure{},
		&domain.ActiveAdventure{},
		&domain.Gear{},
		&domain.OwnedGear{},
		&domain.Admin{},
	))
	return db
}

// newTestRedis returns a client pointing at a closed port. Cache reads fail
// so the cached handlers fall through to the database.
func newTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

// newTestRouter wires the public routes against the test database
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rdb := newTestRedis()
	r := gin.New()

	r.POST("/users/profile", ProfileHandler(db))
	r.POST("/users/level_up", LevelUpHandler(db))
	r.POST("/users/coinflip", CoinflipHandler(db))
	r.POST("/users/slots", SlotsHandler(db))
	r.GET("/users/leaderboard/level", LeaderboardHandler(db, rdb, "level"))
	r.GET("/users/leaderboard/money", LeaderboardHandler(db, rdb, "money"))

	r.GET("/adventures/list", ListAdventuresHandler(db, rdb))
	r.GET("/adventures/detail", AdventureDetailHandler(db))
	r.POST("/adventures/start", StartAdventureHandler(db))
	r.POST("/adventures/status", AdventureStatusHandler(db))
	r.POST("/adventures/complete", CompleteAdventureHandler(db))

	r.GET("/gear/shop", ShopListHandler(db, rdb))
	r.GET("/gear/detail", GearDetailHandler(db))
	r.POST("/gear/purchase", PurchaseHandler(db, rdb))
	r.POST("/gear/owned", OwnedGearHandler(db))
	r.POST("/gear/best", BestGearHandler(db))

	return r
}

// doJSON performs one request against the router and records the response
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// seedUser inserts a user with explicit progression values
func seedUser(t *testing.T, db *gorm.DB, discordID string, level, xp, money int) domain.User {
	t.Helper()
	user := domain.User{DiscordID: discordID, Username: discordID, Level: level, XP: xp, Money: money}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedAdventure inserts a template with level-derived numbers
func seedAdventure(t *testing.T, db *gorm.DB, name string, requiredLevel int) domain.Adventure {
	t.Helper()
	curve := game.DeriveCurve(requiredLevel)
	adventure := domain.Adventure{
		Name:           name,
		Description:    "test adventure",
		RequiredLevel:  requiredLevel,
		TimeToComplete: curve.TimeToComplete,
		RewardMin:      curve.RewardMin,
		RewardMax:      curve.RewardMax,
		XPMin:          curve.XPMin,
		XPMax:          curve.XPMax,
	}
	require.NoError(t, db.Create(&adventure).Error)
	return adventure
}

// seedGear inserts an item with cost-derived bonuses
func seedGear(t *testing.T, db *gorm.DB, name, gearType string, cost int) domain.Gear {
	t.Helper()
	bonus, err := game.DeriveBonus(gearType, cost)
	require.NoError(t, err)
	gear := domain.Gear{
		Name:        name,
		Description: "test gear",
		GearType:    gearType,
		Cost:        cost,
		XPBonus:     bonus.XP,
		MoneyBonus:  bonus.Money,
		TimeBonus:   bonus.Time,
	}
	require.NoError(t, db.Create(&gear).Error)
	return gear
}

// asInt reads a JSON number out of a decoded body
func asInt(t *testing.T, body map[string]any, key string) int {
	t.Helper()
	v, ok := body[key].(float64)
	require.True(t, ok, "missing numeric field %q", key)
	return int(v)
}
