package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Message formatting
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"questbot/internal/domain" // Importing domain models
	"questbot/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// shopListKey is the cache key for the shop list
var shopListKey = utils.CacheKey("gear", "shop")

// ShopListHandler returns all gear items, cached briefly
func ShopListHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var gear []domain.Gear      // Slice to hold shop items
		found, err := utils.GetCache(ctx, rdb, shopListKey, &gear) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"gear": gear, "cached": true}) // Return cached list
			return
		}
		// Fetch all items from the database
		if err := db.Order("cost asc").Find(&gear).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gear"})
			return
		}
		_ = utils.SetCache(ctx, rdb, shopListKey, gear, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"gear": gear, "cached": false})     // Return the list
	}
}

// GearDetailHandler returns one gear item by name
func GearDetailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name") // Gear name from the query string
		if name == "" {
			// Name is required
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		var gear domain.Gear // Item to return
		// Case-insensitive lookup by name
		if err := db.Where("LOWER(name) = LOWER(?)", name).First(&gear).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errGearNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, gear) // Return the item
	}
}

// PurchaseRequest buys a gear item for a user
type PurchaseRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
	Username  string `json:"username"`                      // Display name, optional
	GearName  string `json:"gear_name" binding:"required"`  // Item to buy
}

// PurchaseHandler buys an item: the ownership check, the debit and the
// ownership insert run in one transaction. The debit is guarded on the
// balance so a concurrent purchase cannot double-spend.
func PurchaseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PurchaseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id and gear_name are required"})
			return
		}
		var gear domain.Gear // The purchased item
		var balance int      // Balance after the purchase
		err := db.Transaction(func(tx *gorm.DB) error {
			// Case-insensitive lookup by name
			if err := tx.Where("LOWER(name) = LOWER(?)", req.GearName).First(&gear).Error; err != nil {
				return errGearNotFound
			}
			user, _, err := getOrCreateUser(tx, req.DiscordID, req.Username) // Lazy upsert
			if err != nil {
				return err
			}
			var count int64 // Ownership probe
			// Reject if the user already owns the item
			if err := tx.Model(&domain.OwnedGear{}).Where("user_id = ? AND gear_id = ?", user.ID, gear.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errAlreadyOwned
			}
			// Guarded debit: only fires if the money is still there
			res := tx.Model(&domain.User{}).
				Where("id = ? AND money >= ?", user.ID, gear.Cost).
				Update("money", gorm.Expr("money - ?", gear.Cost))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientFunds
			}
			// Record the ownership
			if err := tx.Create(&domain.OwnedGear{UserID: user.ID, GearID: gear.ID}).Error; err != nil {
				return err
			}
			balance = user.Money - gear.Cost
			return nil
		})
		switch err {
		case nil:
			// Log the purchase
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"gear":       gear.Name,     // Item name
				"cost":       gear.Cost,     // Price paid
				"balance":    balance,       // New balance
			}).Info("Gear purchased")
			// Return the purchase result
			c.JSON(http.StatusOK, gin.H{
				"message": fmt.Sprintf("You bought %s for %d!", gear.Name, gear.Cost),
				"balance": balance,
			})
		case errGearNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()}) // Unknown item
		case errAlreadyOwned, errInsufficientFunds:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Precondition failed
		default:
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Purchase failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed"})
		}
	}
}

// OwnedGearRequest lists a user's gear
type OwnedGearRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
}

// OwnedGearHandler returns every item the user owns
func OwnedGearHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OwnedGearRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id is required"})
			return
		}
		user, _, err := getOrCreateUser(db, req.DiscordID, "") // Lazy upsert
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gear"})
			return
		}
		var owned []domain.OwnedGear // Join rows with their items
		// Load the items in id order so responses are stable
		if err := db.Preload("Gear").Where("user_id = ?", user.ID).Order("gear_id asc").Find(&owned).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gear"})
			return
		}
		gear := make([]domain.Gear, len(owned)) // Flatten to the items
		for i, o := range owned {
			gear[i] = o.Gear
		}
		c.JSON(http.StatusOK, gin.H{"gear": gear}) // Return the items
	}
}

// BestGearRequest asks for a user's best item per stat
type BestGearRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
}

// BestGearHandler returns the user's best item per stat: highest XP bonus,
// highest money bonus, lowest time cost. Ties go to the lowest gear id,
// which the strict comparisons below guarantee on the id-ordered scan.
func BestGearHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BestGearRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id is required"})
			return
		}
		user, _, err := getOrCreateUser(db, req.DiscordID, "") // Lazy upsert
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gear"})
			return
		}
		var owned []domain.OwnedGear // Join rows with their items
		// Scan in id order so ties resolve to the lowest id
		if err := db.Preload("Gear").Where("user_id = ?", user.ID).Order("gear_id asc").Find(&owned).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gear"})
			return
		}
		// A user with no gear has no best gear
		if len(owned) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errNoGearOwned.Error()})
			return
		}
		bestXP, bestMoney, bestTime := owned[0].Gear, owned[0].Gear, owned[0].Gear
		for _, o := range owned[1:] {
			g := o.Gear
			if g.XPBonus > bestXP.XPBonus {
				bestXP = g // Strictly better XP bonus
			}
			if g.MoneyBonus > bestMoney.MoneyBonus {
				bestMoney = g // Strictly better money bonus
			}
			if g.TimeBonus < bestTime.TimeBonus {
				bestTime = g // Strictly lower time cost
			}
		}
		// Return the best item per stat
		c.JSON(http.StatusOK, gin.H{
			"best_xp":    bestXP,
			"best_money": bestMoney,
			"best_time":  bestTime,
		})
	}
}
