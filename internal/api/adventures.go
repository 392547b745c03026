package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Elapsed time and cache TTLs

	"questbot/internal/domain" // Importing domain models
	"questbot/internal/game"   // Reward rolls
	"questbot/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// adventureListKey is the cache key for the adventure list
var adventureListKey = utils.CacheKey("adventures", "list")

// ListAdventuresHandler returns all adventure templates, cached briefly
func ListAdventuresHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()     // Context for Redis operations
		var adventures []domain.Adventure // Slice to hold templates
		found, err := utils.GetCache(ctx, rdb, adventureListKey, &adventures) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"adventures": adventures, "cached": true}) // Return cached list
			return
		}
		// Fetch all templates from the database
		if err := db.Order("required_level asc").Find(&adventures).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch adventures"})
			return
		}
		_ = utils.SetCache(ctx, rdb, adventureListKey, adventures, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"adventures": adventures, "cached": false})    // Return the list
	}
}

// AdventureDetailHandler returns one adventure template by name
func AdventureDetailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name") // Adventure name from the query string
		if name == "" {
			// Name is required
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		var adventure domain.Adventure // Template to return
		// Case-insensitive lookup by name
		if err := db.Where("LOWER(name) = LOWER(?)", name).First(&adventure).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errAdventureNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, adventure) // Return the template
	}
}

// StartAdventureRequest starts an adventure for a user
type StartAdventureRequest struct {
	DiscordID     string `json:"discord_id" binding:"required"`     // External id must be provided
	Username      string `json:"username"`                          // Display name, optional
	AdventureName string `json:"adventure_name" binding:"required"` // Adventure to start
}

// StartAdventureHandler creates the user's ActiveAdventure. The level check
// and the insert run in one transaction; the unique index on user_id stops
// a second concurrent start even if both requests pass the exists check.
func StartAdventureHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartAdventureRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id and adventure_name are required"})
			return
		}
		var active domain.ActiveAdventure // The created run
		err := db.Transaction(func(tx *gorm.DB) error {
			var adventure domain.Adventure // Template being started
			// Case-insensitive lookup by name
			if err := tx.Where("LOWER(name) = LOWER(?)", req.AdventureName).First(&adventure).Error; err != nil {
				return errAdventureNotFound
			}
			user, _, err := getOrCreateUser(tx, req.DiscordID, req.Username) // Lazy upsert
			if err != nil {
				return err
			}
			var count int64 // Existing run probe
			// Reject if the user already has a run going
			if err := tx.Model(&domain.ActiveAdventure{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errAlreadyActive
			}
			// Reject if the user has not reached the required level
			if user.Level < adventure.RequiredLevel {
				return errLevelTooLow
			}
			// Create the run with the full countdown
			active = domain.ActiveAdventure{
				UserID:      user.ID,
				AdventureID: adventure.ID,
				Adventure:   adventure,
				TimeLeft:    adventure.TimeToComplete,
				TimeStarted: time.Now(),
			}
			return tx.Omit("Adventure").Create(&active).Error
		})
		switch err {
		case nil:
			// Log the start
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID,             // External id
				"adventure":  active.Adventure.Name,     // Template name
				"time_left":  active.TimeLeft,           // Countdown seconds
			}).Info("Adventure started")
			// Return the new run
			c.JSON(http.StatusCreated, gin.H{"name": active.Adventure.Name, "time_left": active.TimeLeft})
		case errAdventureNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()}) // Unknown template
		case errAlreadyActive, errLevelTooLow:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Precondition failed
		default:
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Failed to start adventure") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start adventure"})
		}
	}
}

// AdventureStatusRequest polls the user's current adventure
type AdventureStatusRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
}

// AdventureStatusHandler consumes the wall-clock gap since the last poll
// from the countdown. TimeStarted advances only by the whole seconds
// consumed, keeping the sub-second remainder, so each elapsed second is
// consumed exactly once however often the bot polls.
func AdventureStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdventureStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id is required"})
			return
		}
		var active domain.ActiveAdventure // The polled run
		err := db.Transaction(func(tx *gorm.DB) error {
			user, _, err := getOrCreateUser(tx, req.DiscordID, "") // Lazy upsert
			if err != nil {
				return err
			}
			// Load the run with its template
			if err := tx.Preload("Adventure").Where("user_id = ?", user.ID).First(&active).Error; err != nil {
				return errNotActive
			}
			now := time.Now()                                     // Poll timestamp
			elapsed := int(now.Sub(active.TimeStarted).Seconds()) // Whole seconds since the last poll
			active.TimeLeft -= elapsed                            // Consume the gap
			// Advance by the consumed seconds only; re-basing to now would
			// drop the fractional remainder on every poll
			active.TimeStarted = active.TimeStarted.Add(time.Duration(elapsed) * time.Second)
			// Persist the decremented countdown
			return tx.Model(&active).Updates(map[string]any{
				"time_left":    active.TimeLeft,
				"time_started": active.TimeStarted,
			}).Error
		})
		switch err {
		case nil:
			// Countdown exhausted: report completion, do not auto-reward
			if active.TimeLeft <= 0 {
				c.JSON(http.StatusOK, gin.H{"complete": true})
				return
			}
			// Otherwise report the remaining time
			c.JSON(http.StatusOK, gin.H{"name": active.Adventure.Name, "time_left": active.TimeLeft})
		case errNotActive:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // No run to poll
		default:
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Failed to poll adventure") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to poll adventure"})
		}
	}
}

// CompleteAdventureRequest completes the user's current adventure
type CompleteAdventureRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
}

// CompleteAdventureHandler settles the user's run: rolls the rewards,
// credits them and deletes the ActiveAdventure, all in one transaction.
// The countdown is deliberately not re-checked; completing early is the
// caller's call, matching the original design.
func CompleteAdventureHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompleteAdventureRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id is required"})
			return
		}
		var roll game.RewardRoll // The settled reward
		var name string          // Completed adventure name
		err := db.Transaction(func(tx *gorm.DB) error {
			user, _, err := getOrCreateUser(tx, req.DiscordID, "") // Lazy upsert
			if err != nil {
				return err
			}
			var active domain.ActiveAdventure // The run being settled
			// Load the run with its template
			if err := tx.Preload("Adventure").Where("user_id = ?", user.ID).First(&active).Error; err != nil {
				return errNotActive
			}
			adventure := active.Adventure // Template carries the reward ranges
			name = adventure.Name
			// Roll the rewards and the critical table
			roll = game.RollReward(adventure.XPMin, adventure.XPMax, adventure.RewardMin, adventure.RewardMax)
			// Delete the run first; zero rows means another request settled it
			res := tx.Where("id = ?", active.ID).Delete(&domain.ActiveAdventure{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errNotActive
			}
			// Credit the rewards
			return tx.Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]any{
				"xp":    gorm.Expr("xp + ?", roll.XP),
				"money": gorm.Expr("money + ?", roll.Money),
			}).Error
		})
		switch err {
		case nil:
			adventuresCompleted.WithLabelValues(rewardTier(roll.Message)).Inc() // Count the completion
			// Log the settlement
			logrus.WithFields(logrus.Fields{
				"discord_id":   req.DiscordID, // External id
				"adventure":    name,          // Template name
				"xp_reward":    roll.XP,       // Granted XP
				"money_reward": roll.Money,    // Granted money
			}).Info("Adventure completed")
			// Return the granted amounts
			c.JSON(http.StatusOK, gin.H{
				"message":        roll.Message,
				"adventure_name": name,
				"xp_reward":      roll.XP,
				"money_reward":   roll.Money,
			})
		case errNotActive:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // No run to settle
		default:
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Failed to complete adventure") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete adventure"})
		}
	}
}

// rewardTier maps a completion message to a metrics label
func rewardTier(message string) string {
	switch message {
	case game.MsgCritical:
		return "critical"
	case game.MsgBonus:
		return "bonus"
	default:
		return "normal"
	}
}
