package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Message formatting
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"questbot/internal/domain" // Importing domain models
	"questbot/internal/game"   // Progression curve
	"questbot/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ProfileRequest identifies a user by discord id
type ProfileRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
	Username  string `json:"username"`                      // Display name, optional
}

// ProfileHandler returns the user's profile, creating the user on first contact
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id is required"})
			return
		}
		user, created, err := getOrCreateUser(db, req.DiscordID, req.Username) // Lazy upsert
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Failed to fetch profile") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		// 201 on first contact, 200 afterwards
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, userResponse(user)) // Return the profile
	}
}

// LevelUpRequest identifies the user leveling up
type LevelUpRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
}

// LevelUpHandler advances a user one level when they have enough XP.
// The XP check and the level bump run as one guarded update so two
// concurrent requests cannot both spend the same XP.
func LevelUpHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LevelUpRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id is required"})
			return
		}
		var user domain.User // The user after the level up
		var deficit int      // XP still missing when the precondition fails
		err := db.Transaction(func(tx *gorm.DB) error {
			u, _, err := getOrCreateUser(tx, req.DiscordID, "") // Lazy upsert
			if err != nil {
				return err
			}
			needed := game.XPNeeded(u.Level) // XP cost at the current level
			// Guarded update: only fires if the XP is still there
			res := tx.Model(&domain.User{}).
				Where("id = ? AND level = ? AND xp >= ?", u.ID, u.Level, needed).
				Updates(map[string]any{
					"xp":    gorm.Expr("xp - ?", needed),
					"level": gorm.Expr("level + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			// No row updated means not enough XP
			if res.RowsAffected == 0 {
				deficit = needed - u.XP
				if deficit < 0 {
					deficit = 0
				}
				return errNotEnoughXP
			}
			// Reload the mutated row for the response
			return tx.First(&user, u.ID).Error
		})
		// Precondition failure: state untouched, report the deficit
		if err == errNotEnoughXP {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Not enough XP to level up. You need %d more XP.", deficit)})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Level up failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Level up failed"})
			return
		}
		// Log successful level up
		logrus.WithFields(logrus.Fields{
			"discord_id": req.DiscordID, // External id
			"level":      user.Level,    // New level
			"xp":         user.XP,       // Remaining XP
		}).Info("User leveled up")
		// Return the new level and remaining XP
		c.JSON(http.StatusOK, gin.H{
			"message":   fmt.Sprintf("Congratulations! You leveled up to level %d.", user.Level),
			"level":     user.Level,
			"xp":        user.XP,
			"xp_needed": game.XPNeeded(user.Level),
		})
	}
}

// LeaderboardHandler returns the top 10 users ordered by the given column
// ("level" or "money"), cached briefly in Redis
func LeaderboardHandler(db *gorm.DB, rdb *redis.Client, column string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()          // Context for Redis operations
		cacheKey := utils.CacheKey("leaderboard", column) // Cache key per ranking
		var users []domain.User              // Slice to hold ranked users
		found, err := utils.GetCache(ctx, rdb, cacheKey, &users) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"users": users, "cached": true}) // Return cached ranking
			return
		}
		// Fetch the top 10 from the database
		if err := db.Order(column + " desc").Limit(10).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, users, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"users": users, "cached": false}) // Return the ranking
	}
}
