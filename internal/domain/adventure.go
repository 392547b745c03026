package domain

import "time"

// Adventure Model (template; numeric fields derived from RequiredLevel)
type Adventure struct {
	ID             uint   `gorm:"primaryKey" json:"-"`         // Primary key
	Name           string `gorm:"unique;not null" json:"name"` // Unique adventure name
	Description    string `json:"description"`                 // Flavor text shown to players
	RequiredLevel  int    `gorm:"default:1" json:"required_level"` // Minimum user level to start
	TimeToComplete int    `json:"time_to_complete"`            // Seconds to finish, derived
	RewardMin      int    `json:"reward_min"`                  // Minimum money reward, derived
	RewardMax      int    `json:"reward_max"`                  // Maximum money reward, derived
	XPMin          int    `json:"xp_min"`                      // Minimum XP reward, derived
	XPMax          int    `json:"xp_max"`                      // Maximum XP reward, derived
}

// ActiveAdventure Model (at most one per user)
type ActiveAdventure struct {
	ID          uint      `gorm:"primaryKey" json:"-"` // Primary key
	UserID      uint      `gorm:"uniqueIndex" json:"-"` // Foreign key to User, unique enforces one at a time
	AdventureID uint      `json:"-"`                   // Foreign key to Adventure
	Adventure   Adventure `gorm:"constraint:OnDelete:CASCADE" json:"adventure"` // Template being run
	TimeLeft    int       `json:"time_left"`           // Seconds remaining, consumed by status polls
	TimeStarted time.Time `json:"time_started"`        // Re-based to now on every status poll
}
