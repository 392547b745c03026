package domain

// Admin Model (management accounts for the admin endpoints)
type Admin struct {
	ID       uint   `gorm:"primaryKey"`      // Primary key
	Username string `gorm:"unique;not null"` // Unique username
	Password string `gorm:"not null"`        // Hashed password
	Role     string `gorm:"default:viewer"`  // Role: viewer or admin, promoted manually
}
