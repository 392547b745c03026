package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Message formatting
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTLs

	"questbot/internal/domain" // Importing domain models
	"questbot/internal/game"   // Curve and bonus derivation
	"questbot/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// AdventureTemplateRequest creates or updates an adventure template
type AdventureTemplateRequest struct {
	Name          string `json:"name" binding:"required"`              // Unique adventure name
	Description   string `json:"description"`                          // Flavor text
	RequiredLevel int    `json:"required_level" binding:"required,gte=1"` // Minimum level, drives derivation
}

// applyCurve fills the derived numeric fields from the required level
func applyCurve(adventure *domain.Adventure) {
	curve := game.DeriveCurve(adventure.RequiredLevel) // Derive from the level
	adventure.TimeToComplete = curve.TimeToComplete
	adventure.RewardMin = curve.RewardMin
	adventure.RewardMax = curve.RewardMax
	adventure.XPMin = curve.XPMin
	adventure.XPMax = curve.XPMax
}

// CreateAdventureHandler creates an adventure template with derived fields
func CreateAdventureHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdventureTemplateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and required_level are required"})
			return
		}
		adventure := domain.Adventure{
			Name:          req.Name,          // Unique name
			Description:   req.Description,   // Flavor text
			RequiredLevel: req.RequiredLevel, // Minimum level
		}
		applyCurve(&adventure) // Derive the numeric fields
		// Attempt to create the template
		if err := db.Create(&adventure).Error; err != nil {
			// Duplicate name or other constraint violation
			c.JSON(http.StatusBadRequest, gin.H{"error": "Adventure already exists"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, adventureListKey) // Invalidate the list cache
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"adventure":      adventure.Name,          // Template name
			"required_level": adventure.RequiredLevel, // Minimum level
		}).Info("Adventure created")
		c.JSON(http.StatusCreated, adventure) // Return the template
	}
}

// UpdateAdventureHandler updates a template by name and re-derives all
// numeric fields from the new required level
func UpdateAdventureHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name") // Template name from the URL
		var req AdventureTemplateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and required_level are required"})
			return
		}
		var adventure domain.Adventure // Template being edited
		// Case-insensitive lookup by name
		if err := db.Where("LOWER(name) = LOWER(?)", name).First(&adventure).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errAdventureNotFound.Error()})
			return
		}
		adventure.Name = req.Name                   // Rename is allowed
		adventure.Description = req.Description     // Replace flavor text
		adventure.RequiredLevel = req.RequiredLevel // New minimum level
		applyCurve(&adventure)                      // Re-derive the numeric fields
		// Persist the edit
		if err := db.Save(&adventure).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update adventure"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, adventureListKey) // Invalidate the list cache
		c.JSON(http.StatusOK, adventure)                                   // Return the template
	}
}

// GearTemplateRequest creates or updates a gear item
type GearTemplateRequest struct {
	Name        string `json:"name" binding:"required"`          // Unique item name
	Description string `json:"description"`                      // Flavor text
	GearType    string `json:"gear_type" binding:"required"`     // weapon, armor or accessory
	Cost        int    `json:"cost" binding:"required,gte=0"`    // Shop price, drives derivation
}

// applyBonus fills the derived bonus triple from the type and cost
func applyBonus(gear *domain.Gear) error {
	bonus, err := game.DeriveBonus(gear.GearType, gear.Cost) // Derive from type and cost
	if err != nil {
		return err
	}
	gear.XPBonus = bonus.XP
	gear.MoneyBonus = bonus.Money
	gear.TimeBonus = bonus.Time
	return nil
}

// CreateGearHandler creates a gear item with a derived bonus triple
func CreateGearHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GearTemplateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, gear_type and cost are required"})
			return
		}
		// Reject unknown categories
		if !game.ValidGearType(req.GearType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gear_type must be weapon, armor or accessory"})
			return
		}
		gear := domain.Gear{
			Name:        req.Name,        // Unique name
			Description: req.Description, // Flavor text
			GearType:    req.GearType,    // Category
			Cost:        req.Cost,        // Price
		}
		// Derive the bonus triple
		if err := applyBonus(&gear); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Attempt to create the item
		if err := db.Create(&gear).Error; err != nil {
			// Duplicate name or other constraint violation
			c.JSON(http.StatusBadRequest, gin.H{"error": "Gear already exists"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, shopListKey) // Invalidate the shop cache
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"gear": gear.Name,     // Item name
			"type": gear.GearType, // Category
			"cost": gear.Cost,     // Price
		}).Info("Gear created")
		c.JSON(http.StatusCreated, gear) // Return the item
	}
}

// UpdateGearHandler updates an item by name and re-derives its bonuses
func UpdateGearHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")     // Item name from the URL
		var req GearTemplateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, gear_type and cost are required"})
			return
		}
		// Reject unknown categories
		if !game.ValidGearType(req.GearType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gear_type must be weapon, armor or accessory"})
			return
		}
		var gear domain.Gear // Item being edited
		// Case-insensitive lookup by name
		if err := db.Where("LOWER(name) = LOWER(?)", name).First(&gear).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errGearNotFound.Error()})
			return
		}
		gear.Name = req.Name               // Rename is allowed
		gear.Description = req.Description // Replace flavor text
		gear.GearType = req.GearType       // New category
		gear.Cost = req.Cost               // New price
		// Re-derive the bonus triple
		if err := applyBonus(&gear); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Persist the edit
		if err := db.Save(&gear).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update gear"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, shopListKey) // Invalidate the shop cache
		c.JSON(http.StatusOK, gear)                                   // Return the item
	}
}

// GrantRequest gives money or XP to a user
type GrantRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
	Amount    int    `json:"amount" binding:"required,gt=0"` // Amount must be a positive integer
}

// GiveMoneyHandler adds money to a user's balance
func GiveMoneyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GrantRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive integer."})
			return
		}
		var user domain.User // Receiving user
		// Grants go only to existing users
		if err := db.Where("discord_id = ?", req.DiscordID).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound.Error()})
			return
		}
		// Credit the amount
		if err := db.Model(&user).Update("money", gorm.Expr("money + ?", req.Amount)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to give money"})
			return
		}
		// Log the grant
		logrus.WithFields(logrus.Fields{
			"discord_id": req.DiscordID, // External id
			"amount":     req.Amount,    // Granted amount
		}).Info("Money granted")
		// Return the new balance
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Successfully added %d money to %s's account.", req.Amount, user.Username),
			"balance": user.Money + req.Amount,
		})
	}
}

// GiveXPHandler adds XP to a user
func GiveXPHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GrantRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive integer."})
			return
		}
		var user domain.User // Receiving user
		// Grants go only to existing users
		if err := db.Where("discord_id = ?", req.DiscordID).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound.Error()})
			return
		}
		// Credit the amount
		if err := db.Model(&user).Update("xp", gorm.Expr("xp + ?", req.Amount)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to give XP"})
			return
		}
		// Log the grant
		logrus.WithFields(logrus.Fields{
			"discord_id": req.DiscordID, // External id
			"amount":     req.Amount,    // Granted amount
		}).Info("XP granted")
		// Return the new XP total
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Successfully added %d xp to %s's account.", req.Amount, user.Username),
			"xp":      user.XP + req.Amount,
		})
	}
}

// DeleteUserHandler removes a user and everything hanging off them
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		discordID := c.Param("discord_id") // External id from the URL
		var user domain.User               // User being deleted
		if err := db.Where("discord_id = ?", discordID).First(&user).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound.Error()})
			return
		}
		// Delete the user and their dependent rows as one unit
		err := db.Transaction(func(tx *gorm.DB) error {
			// Drop any running adventure
			if err := tx.Where("user_id = ?", user.ID).Delete(&domain.ActiveAdventure{}).Error; err != nil {
				return err
			}
			// Drop owned gear
			if err := tx.Where("user_id = ?", user.ID).Delete(&domain.OwnedGear{}).Error; err != nil {
				return err
			}
			// Drop the user
			return tx.Delete(&user).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"discord_id": discordID,   // External id
				"error":      err.Error(), // Error message
			}).Error("Failed to delete user") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"discord_id": discordID, // External id
		}).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "User successfully deleted."}) // Return success
	}
}

// ListUsersHandler returns all users, paginated and cached
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := utils.CacheKey("admin", "users", "page="+c.DefaultQuery("page", "1"), "size="+c.DefaultQuery("page_size", "20"))
		// Try to get cached response
		var cached struct {
			Users      []domain.User `json:"users"`       // List of users
			Page       int           `json:"page"`        // Current page
			PageSize   int           `json:"page_size"`   // Page size
			Total      int64         `json:"total"`       // Total number of users
			TotalPages int           `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // List of users
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		// Fetch total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"}) // Return on error
			return
		}
		var users []domain.User // Slice to hold users
		// Apply offset and limit for pagination
		if err := db.Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"}) // Return on error
			return
		}
		// The total number of pages
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Prepare final response data
		respData := gin.H{
			"users":       users,      // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}
