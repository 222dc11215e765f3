package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Pravinale/pantonefrontend/checkout"
	"github.com/Pravinale/pantonefrontend/config"
	eventControllers "github.com/Pravinale/pantonefrontend/controllers/events"
	"github.com/Pravinale/pantonefrontend/routes"
	"github.com/Pravinale/pantonefrontend/store"
	"github.com/Pravinale/pantonefrontend/upstream"
)

func main() {
	log.Println("✅ Starting storefront session service...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Durable session state (the localStorage analog) and the stores on it
	local := store.OpenLocalStore(cfg.SessionFile)
	api := upstream.New(cfg.UpstreamBaseURL)
	cart := store.NewCartStore(local, api)
	session := store.NewAuthSession(local)

	// Checkout flow with lifecycle events pushed to the UI
	hub := eventControllers.NewHub()
	flow := checkout.NewFlow(cart, api, checkout.Config{
		DeliveryCharge:   cfg.DeliveryCharge,
		EsewaFormURL:     cfg.EsewaFormURL,
		EsewaProductCode: cfg.EsewaProductCode,
		SuccessURL:       cfg.SuccessURL,
		FailureURL:       cfg.FailureURL,
	}, hub.Broadcast)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Cfg:     cfg,
		Cart:    cart,
		Session: session,
		Flow:    flow,
		API:     api,
		Hub:     hub,
	})

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
