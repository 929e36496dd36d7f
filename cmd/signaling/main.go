package main

import (
	"log"

	"github.com/fleetlink/signaling/config"
	"github.com/fleetlink/signaling/internal/handlers"
	"github.com/fleetlink/signaling/internal/middleware"
	"github.com/fleetlink/signaling/internal/presence"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Relay state: presence registry + hub of live connections
	registry := presence.NewRegistry()
	hub := handlers.NewHub()
	signaling := handlers.NewSignaling(registry, hub)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Global CORS middleware (runs before routing)
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Operator API (authenticated)
	apiGroup := router.Group("/api")
	{
		// Who is online, per role (requires JWT)
		apiGroup.GET("/presence", middleware.JWTAuth(cfg.JWTSecret), signaling.GetPresence)
	}

	// WebSocket signaling endpoints, one per partition
	wsGroup := router.Group("/ws")
	{
		// Admin <-> driver WebRTC handshake
		wsGroup.GET("/signal", signaling.Socket(handlers.NamespaceDefault))

		// Role-scoped partitions
		wsGroup.GET("/admin", signaling.Socket(handlers.NamespaceAdmin))
		wsGroup.GET("/client", signaling.Socket(handlers.NamespaceClient))
		wsGroup.GET("/driver", signaling.Socket(handlers.NamespaceDriver))
	}

	// Start server
	log.Printf("Starting signaling relay on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
