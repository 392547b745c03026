package api

import (
	"fmt"      // Message formatting
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"questbot/internal/domain" // Importing domain models
	"questbot/internal/game"   // Gambling draws and payout tables

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CoinflipRequest places a coinflip bet
type CoinflipRequest struct {
	DiscordID string `json:"discord_id" binding:"required"`   // External id must be provided
	Username  string `json:"username"`                        // Display name, optional
	Bet       int    `json:"bet" binding:"required,gt=0"`     // Bet amount, must be positive
	Side      string `json:"side" binding:"required"`         // heads or tails
}

// CoinflipHandler settles a coinflip: the funds check and the balance move
// run as one guarded update, so the delta is always exactly +bet or -bet.
func CoinflipHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CoinflipRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id, bet and side are required"})
			return
		}
		side := strings.ToLower(req.Side) // Normalize the side
		if !game.ValidSide(side) {
			// Reject unknown sides
			c.JSON(http.StatusBadRequest, gin.H{"error": "Side must be heads or tails."})
			return
		}
		var result string // The drawn side
		var win bool      // Whether the caller guessed right
		var balance int   // Balance after settlement
		err := db.Transaction(func(tx *gorm.DB) error {
			user, _, err := getOrCreateUser(tx, req.DiscordID, req.Username) // Lazy upsert
			if err != nil {
				return err
			}
			result = game.FlipCoin() // Fair draw
			win = result == side
			delta := req.Bet // Win credits the bet
			if !win {
				delta = -req.Bet // Loss debits it
			}
			// Guarded settlement: only fires if the stake is still covered
			res := tx.Model(&domain.User{}).
				Where("id = ? AND money >= ?", user.ID, req.Bet).
				Update("money", gorm.Expr("money + ?", delta))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientFunds
			}
			balance = user.Money + delta
			return nil
		})
		switch err {
		case nil:
			gamblesSettled.WithLabelValues("coinflip", outcomeLabel(win)).Inc() // Count the settlement
			// Log the settlement
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"bet":        req.Bet,       // Stake
				"result":     result,        // Drawn side
				"win":        win,           // Outcome
				"balance":    balance,       // New balance
			}).Info("Coinflip settled")
			// Build the outcome message
			verb := "won"
			if !win {
				verb = "lost"
			}
			// Return the settlement
			c.JSON(http.StatusOK, gin.H{
				"win":     win,
				"result":  result,
				"balance": balance,
				"message": fmt.Sprintf("You %s! The coin landed on %s. Your new balance is %d.", verb, result, balance),
			})
		case errInsufficientFunds:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Precondition failed
		default:
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Coinflip failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Coinflip failed"})
		}
	}
}

// SlotsRequest spins the slot machine
type SlotsRequest struct {
	DiscordID string `json:"discord_id" binding:"required"` // External id must be provided
	Username  string `json:"username"`                      // Display name, optional
	Bet       int    `json:"bet" binding:"required,gt=0"`   // Bet amount, must be positive
}

// SlotsHandler spins and settles the slot machine in one transaction
func SlotsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SlotsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "discord_id and bet are required"})
			return
		}
		var s1, s2, s3 game.Symbol // Drawn symbols
		var win bool               // Outcome
		var multiplier float64     // Payout multiplier on a win
		var message string         // Outcome message
		var balance int            // Balance after settlement
		err := db.Transaction(func(tx *gorm.DB) error {
			user, _, err := getOrCreateUser(tx, req.DiscordID, req.Username) // Lazy upsert
			if err != nil {
				return err
			}
			s1, s2, s3 = game.SpinSlots()                    // Draw the reels
			win, multiplier, message = game.EvaluateSlots(s1, s2, s3) // Score the spin
			delta := -req.Bet // Loss debits the bet
			if win {
				delta = game.Winnings(req.Bet, multiplier) // Win credits the floored payout
			}
			// Guarded settlement: only fires if the stake is still covered
			res := tx.Model(&domain.User{}).
				Where("id = ? AND money >= ?", user.ID, req.Bet).
				Update("money", gorm.Expr("money + ?", delta))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientFunds
			}
			balance = user.Money + delta
			return nil
		})
		switch err {
		case nil:
			gamblesSettled.WithLabelValues("slots", outcomeLabel(win)).Inc() // Count the settlement
			// Log the settlement
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID,                    // External id
				"bet":        req.Bet,                          // Stake
				"slots":      fmt.Sprintf("%s|%s|%s", s1, s2, s3), // Drawn symbols
				"win":        win,                              // Outcome
				"balance":    balance,                          // New balance
			}).Info("Slots settled")
			// Return the spin with display glyphs
			c.JSON(http.StatusOK, gin.H{
				"slots": []gin.H{
					{"symbol": s1, "emoji": s1.Emoji()},
					{"symbol": s2, "emoji": s2.Emoji()},
					{"symbol": s3, "emoji": s3.Emoji()},
				},
				"win":        win,
				"multiplier": multiplier,
				"message":    message,
				"balance":    balance,
			})
		case errInsufficientFunds:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Precondition failed
		default:
			logrus.WithFields(logrus.Fields{
				"discord_id": req.DiscordID, // External id
				"error":      err.Error(),   // Error message
			}).Error("Slots failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Slots failed"})
		}
	}
}
