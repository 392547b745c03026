package main

import (
	"context"                         // context package is needed for Redis operations
	"log"                             // log package is needed for logging
	"questbot/internal/api"           // Custom package for API handlers
	"questbot/internal/config"        // Custom package for configuration
	"questbot/internal/middleware"    // Custom package for middleware

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus metrics handler
	"github.com/redis/go-redis/v9"                            // Redis client
	"github.com/sirupsen/logrus"                              // Logrus for structured logging
	"gorm.io/driver/mysql"                                    // MySQL driver for GORM
	"gorm.io/gorm"                                            // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// User routes (bot-facing, keyed by discord_id)
	userGroup := r.Group("/users")
	userGroup.POST("/profile", api.ProfileHandler(db))                                    // Get-or-create profile endpoint
	userGroup.POST("/level_up", api.LevelUpHandler(db))                                   // Level up endpoint
	userGroup.POST("/coinflip", api.CoinflipHandler(db))                                  // Coinflip endpoint
	userGroup.POST("/slots", api.SlotsHandler(db))                                        // Slot machine endpoint
	userGroup.GET("/leaderboard/level", api.LeaderboardHandler(db, redisClient, "level")) // Level ranking endpoint
	userGroup.GET("/leaderboard/money", api.LeaderboardHandler(db, redisClient, "money")) // Money ranking endpoint

	// Adventure routes
	adventureGroup := r.Group("/adventures")
	adventureGroup.GET("/list", api.ListAdventuresHandler(db, redisClient)) // List templates endpoint
	adventureGroup.GET("/detail", api.AdventureDetailHandler(db))           // Template detail endpoint
	adventureGroup.POST("/start", api.StartAdventureHandler(db))            // Start endpoint
	adventureGroup.POST("/status", api.AdventureStatusHandler(db))          // Countdown poll endpoint
	adventureGroup.POST("/complete", api.CompleteAdventureHandler(db))      // Settlement endpoint

	// Gear routes
	gearGroup := r.Group("/gear")
	gearGroup.GET("/shop", api.ShopListHandler(db, redisClient))      // Shop list endpoint
	gearGroup.GET("/detail", api.GearDetailHandler(db))               // Item detail endpoint
	gearGroup.POST("/purchase", api.PurchaseHandler(db, redisClient)) // Purchase endpoint
	gearGroup.POST("/owned", api.OwnedGearHandler(db))                // Owned items endpoint
	gearGroup.POST("/best", api.BestGearHandler(db))                  // Best-per-stat endpoint

	// Auth routes for admin accounts
	r.POST("/auth/register", api.RegisterHandler(db))          // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/adventures", api.CreateAdventureHandler(db, redisClient))      // Create template endpoint
	adminGroup.PUT("/adventures/:name", api.UpdateAdventureHandler(db, redisClient)) // Edit template endpoint
	adminGroup.POST("/gear", api.CreateGearHandler(db, redisClient))                 // Create gear endpoint
	adminGroup.PUT("/gear/:name", api.UpdateGearHandler(db, redisClient))            // Edit gear endpoint
	adminGroup.POST("/give_money", api.GiveMoneyHandler(db))                         // Money grant endpoint
	adminGroup.POST("/give_xp", api.GiveXPHandler(db))                               // XP grant endpoint
	adminGroup.DELETE("/users/:discord_id", api.DeleteUserHandler(db))               // Delete user endpoint
	adminGroup.GET("/users", api.ListUsersHandler(db, redisClient))                  // List users endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
