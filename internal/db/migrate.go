package db

import (
	"questbot/internal/domain" // Importing domain models
	"questbot/internal/game"   // Curve and bonus derivation

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Adventure{},
		&domain.ActiveAdventure{},
		&domain.Gear{},
		&domain.OwnedGear{},
		&domain.Admin{},
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	Seed(db)                            // Seed starter content if the tables are empty
	logrus.Info("Migration completed.") // Log successful migration
}

// seedAdventures are the starter adventure templates, numeric fields derived
var seedAdventures = []struct {
	Name          string
	Description   string
	RequiredLevel int
}{
	{"Rat Cellar", "Clear the rats out of the tavern cellar.", 1},
	{"Goblin Camp", "Scout the goblin camp at the forest's edge.", 2},
	{"Haunted Mill", "Find out what walks the old mill at night.", 4},
	{"Dragon's Roost", "Steal a scale from the sleeping dragon.", 8},
}

// seedGear are the starter shop items, bonus triples derived
var seedGear = []struct {
	Name        string
	Description string
	GearType    string
	Cost        int
}{
	{"Rusty Sword", "It has seen better days.", game.GearTypeWeapon, 100},
	{"Steel Sword", "Sharp and dependable.", game.GearTypeWeapon, 250},
	{"Leather Armor", "Better than nothing.", game.GearTypeArmor, 100},
	{"Chainmail", "Heavy, but it works.", game.GearTypeArmor, 300},
	{"Lucky Charm", "Feels lighter already.", game.GearTypeAccessory, 150},
	{"Boots of Haste", "Adventures fly by.", game.GearTypeAccessory, 400},
}

// Seed inserts starter adventures and gear when their tables are empty
func Seed(db *gorm.DB) {
	var count int64 // Row count probe
	// Seed adventures only into an empty table
	if db.Model(&domain.Adventure{}).Count(&count); count == 0 {
		for _, a := range seedAdventures {
			curve := game.DeriveCurve(a.RequiredLevel) // Derive numeric fields from the level
			adventure := domain.Adventure{
				Name:           a.Name,
				Description:    a.Description,
				RequiredLevel:  a.RequiredLevel,
				TimeToComplete: curve.TimeToComplete,
				RewardMin:      curve.RewardMin,
				RewardMax:      curve.RewardMax,
				XPMin:          curve.XPMin,
				XPMax:          curve.XPMax,
			}
			if err := db.Create(&adventure).Error; err != nil {
				logrus.Errorf("failed to seed adventure %s: %v", a.Name, err)
			}
		}
		logrus.Info("Seeded starter adventures.")
	}
	// Seed gear only into an empty table
	if db.Model(&domain.Gear{}).Count(&count); count == 0 {
		for _, g := range seedGear {
			bonus, err := game.DeriveBonus(g.GearType, g.Cost) // Derive the bonus triple
			if err != nil {
				logrus.Errorf("failed to seed gear %s: %v", g.Name, err)
				continue
			}
			gear := domain.Gear{
				Name:        g.Name,
				Description: g.Description,
				GearType:    g.GearType,
				Cost:        g.Cost,
				XPBonus:     bonus.XP,
				MoneyBonus:  bonus.Money,
				TimeBonus:   bonus.Time,
			}
			if err := db.Create(&gear).Error; err != nil {
				logrus.Errorf("failed to seed gear %s: %v", g.Name, err)
			}
		}
		logrus.Info("Seeded starter gear.")
	}
}
