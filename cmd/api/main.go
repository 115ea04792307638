package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"blog-backend/internal/config"
	"blog-backend/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is optional, production uses the real environment
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// ========================================
	// LOGGER + GIN MODE
	// ========================================
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Printf("🌍 Environment: %s", cfg.App.Environment)

	if err := Serve(cfg); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
