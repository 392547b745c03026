package domain

// Gear Model (bonus triple derived from GearType and Cost)
type Gear struct {
	ID          uint    `gorm:"primaryKey" json:"id"`        // Primary key, also the best-gear tie-break
	Name        string  `gorm:"unique;not null" json:"name"` // Unique item name
	Description string  `json:"description"`                 // Flavor text shown in the shop
	GearType    string  `json:"gear_type"`                   // weapon, armor or accessory
	Cost        int     `json:"cost"`                        // Shop price
	XPBonus     float64 `json:"xp_bonus"`                    // XP percent bonus, derived
	MoneyBonus  float64 `json:"money_bonus"`                 // Money percent bonus, derived
	TimeBonus   float64 `json:"time_bonus"`                  // Time percent cost, derived, lower is better
}

// OwnedGear Model (join between User and Gear, no duplicates)
type OwnedGear struct {
	ID     uint `gorm:"primaryKey"`                 // Primary key
	UserID uint `gorm:"uniqueIndex:idx_user_gear"`  // Foreign key to User
	GearID uint `gorm:"uniqueIndex:idx_user_gear"`  // Foreign key to Gear
	Gear   Gear `gorm:"constraint:OnDelete:CASCADE"` // Owned item
}
