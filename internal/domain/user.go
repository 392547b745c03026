package domain

// User Model
type User struct {
	ID        uint   `gorm:"primaryKey" json:"-"`               // Primary key
	DiscordID string `gorm:"unique;not null" json:"discord_id"` // Stable external id from Discord
	Username  string `json:"username"`                          // Display name, refreshed on contact
	Level     int    `gorm:"default:1" json:"level"`            // Current level, starts at 1
	XP        int    `gorm:"default:0" json:"xp"`               // Accumulated experience, never negative
	Money     int    `gorm:"default:100" json:"money"`          // Balance, never negative
}
