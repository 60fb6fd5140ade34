package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jpatelved/tradeboard/internal/auth"
	"github.com/jpatelved/tradeboard/internal/db"
	"github.com/jpatelved/tradeboard/internal/handlers"
	"github.com/jpatelved/tradeboard/internal/logger"
	"github.com/jpatelved/tradeboard/internal/storage"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults or environment variables")
	}

	zlog, loggerSync, err := logger.NewZapLogger(logger.Info)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer loggerSync()

	// Initialize database
	if err := db.InitDB(); err != nil {
		zlog.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseDB()
	zlog.Infof("✅ Database connected successfully")

	// Identity provider and blob store are external hosted services
	authClient := auth.NewClient(
		getEnv("AUTH_URL", "http://localhost:9999"),
		os.Getenv("AUTH_ANON_KEY"),
	)
	blobs := storage.NewHTTPBlobStore(
		getEnv("BLOB_STORE_URL", "http://localhost:8971/blobs"),
		getEnv("BLOB_PUBLIC_URL", "http://localhost:8971/serve"),
		os.Getenv("BLOB_API_TOKEN"),
	)

	chartHandler := handlers.NewChartHandler(authClient, blobs, zlog)
	insightHandler := handlers.NewInsightHandler(authClient, os.Getenv("INSIGHT_INGEST_KEY"), zlog)
	profileHandler := handlers.NewProfileHandler(authClient)
	if insightHandler.IngestKey == "" {
		zlog.Infof("INSIGHT_INGEST_KEY not set, insight ingest endpoint is open")
	}

	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// API routes
	api := router.Group("/api")
	{
		api.POST("/charts", chartHandler.UploadChart)
		api.GET("/charts", chartHandler.GetCharts)
		api.POST("/trade-insights", insightHandler.CreateInsight)
		api.GET("/trade-insights", insightHandler.GetInsights)
		api.GET("/me", profileHandler.GetProfile)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Serve frontend
	router.GET("/", func(c *gin.Context) {
		c.File("./public/index.html")
	})

	router.NoRoute(func(c *gin.Context) {
		c.File("./public/index.html")
	})

	// Get port from environment or default
	port := getEnv("PORT", "8080")

	zlog.Infof("🚀 Server starting on http://localhost:%s", port)

	if err := router.Run(":" + port); err != nil {
		zlog.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
