package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/routes"
)

func main() {
	log.Println("✅ Starting ZeroTreat API...")

	// Load environment variables
	_ = godotenv.Load()

	backendURL := os.Getenv("BACKEND_URL")
	backendKey := os.Getenv("BACKEND_ANON_KEY")
	if backendURL == "" || backendKey == "" {
		log.Fatal("❌ BACKEND_URL and BACKEND_ANON_KEY must be set")
	}

	// One client for auth, rows, and storage; injected everywhere.
	client := backend.New(backendURL, backendKey)

	// Gin setup
	r := gin.Default()

	// CORS settings
	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Rows:      client,
		Sessions:  client,
		Blobs:     client,
		JWTSecret: os.Getenv("BACKEND_JWT_SECRET"),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
