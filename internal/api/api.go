package api

import (
	"errors" // Sentinel errors for precondition failures

	"questbot/internal/domain" // Importing domain models
	"questbot/internal/game"   // Progression curve

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Precondition errors surfaced by transactional handlers. The handler maps
// each to an HTTP status and a structured reason for the caller.
var (
	errAdventureNotFound = errors.New("Adventure does not exist.")
	errGearNotFound      = errors.New("Gear does not exist.")
	errUserNotFound      = errors.New("User not found.")
	errAlreadyActive     = errors.New("User is already on an adventure.")
	errNotActive         = errors.New("User is not on an adventure.")
	errLevelTooLow       = errors.New("User level is too low for this adventure.")
	errInsufficientFunds = errors.New("Insufficient funds.")
	errNotEnoughXP       = errors.New("not enough xp")
	errAlreadyOwned      = errors.New("You already own this item.")
	errNoGearOwned       = errors.New("User does not own any gear.")
)

// getOrCreateUser fetches the user for a discord id, creating it with the
// starting defaults on first contact. The lookup and insert run as one
// statement so concurrent first contacts cannot double-create.
func getOrCreateUser(tx *gorm.DB, discordID, username string) (*domain.User, bool, error) {
	var user domain.User
	res := tx.Where(domain.User{DiscordID: discordID}).
		Attrs(domain.User{Username: username, Level: 1, XP: 0, Money: 100}).
		FirstOrCreate(&user)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected == 1 // FirstOrCreate affects a row only on insert
	// Refresh the display name when Discord reports a new one
	if !created && username != "" && user.Username != username {
		if err := tx.Model(&user).Update("username", username).Error; err != nil {
			return nil, false, err
		}
		user.Username = username
	}
	return &user, created, nil
}

// userResponse shapes a user for the API, including the XP needed to level
func userResponse(user *domain.User) gin.H {
	return gin.H{
		"discord_id": user.DiscordID,                // Stable external id
		"username":   user.Username,                 // Display name
		"level":      user.Level,                    // Current level
		"xp":         user.XP,                       // Accumulated XP
		"money":      user.Money,                    // Balance
		"xp_needed":  game.XPNeeded(user.Level),     // XP required for the next level
	}
}
