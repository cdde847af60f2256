package main

import (
	"context" // context package is needed for Redis operations and the sweeper
	"log"     // log package is needed for logging

	"kodbank/internal/api"        // Custom package for API handlers
	"kodbank/internal/auth"       // Credential verifier and token authority
	"kodbank/internal/config"     // Custom package for configuration
	"kodbank/internal/middleware" // Custom package for middleware
	"kodbank/internal/store"      // Repository implementations

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database.
	// TranslateError turns duplicate-key violations into
	// gorm.ErrDuplicatedKey, which the account store relies on.
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
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

	// Wire the stores and the auth components
	accounts := store.NewAccountStore(db)                                       // Account repository
	tokens := store.NewTokenStore(db)                                           // Session-token repository
	verifier := auth.NewVerifier(accounts)                                      // Credential verifier
	authority := auth.NewTokenAuthority(tokens, cfg.JWTSecret, cfg.TokenTTL)    // Token authority

	// Optional housekeeping: sweep expired token records
	if cfg.SweepInterval > 0 {
		go authority.RunSweeper(context.Background(), cfg.SweepInterval)
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

	// Access logging with request IDs
	r.Use(middleware.RequestLogger())

	// Open routes
	r.POST("/api/register", api.RegisterHandler(accounts))         // Registration endpoint
	r.POST("/api/login", api.LoginHandler(verifier, authority))    // Login endpoint
	r.POST("/api/logout", api.LogoutHandler(authority, redisClient)) // Logout endpoint, never fails

	// Balance route (protected by the session cookie)
	secured := r.Group("/api")
	secured.Use(middleware.SessionAuth(authority))
	secured.GET("/balance", api.BalanceHandler(accounts, redisClient)) // Balance endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
