package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/config"
	"github.com/profast/parcel-api/internal/database"
	"github.com/profast/parcel-api/internal/handlers"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database with better error handling
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	store := repository.NewStore(db, repository.NewRetrier(cfg.StoreMaxRetries, cfg.StoreTimeout))

	// Initialize Redis
	redisClient, err := services.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Firebase when a service account is configured, shared-secret JWTs otherwise
	var verifier services.IdentityVerifier
	if cfg.FirebaseServiceAccountPath != "" {
		verifier, err = services.NewFirebaseVerifier(ctx, cfg.FirebaseServiceAccountPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
	} else {
		log.Println("Firebase not configured. Verifying HS256 tokens signed with JWT_SECRET")
		verifier = services.NewJWTVerifier(cfg.JWTSecret)
	}

	// Initialize Storage (S3 or local fallback)
	storage, err := services.NewStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()
	go redisClient.ForwardEvents(ctx, hub)

	gateway := services.NewStripeGateway(services.StripeConfig{
		SecretKey:  cfg.StripeSecretKey,
		Timeout:    cfg.GatewayTimeout,
		MaxRetries: cfg.GatewayMaxRetries,
	})
	payments := services.NewPaymentService(
		store.Parcels,
		store.Payments,
		gateway,
		redisClient,
		redisClient,
		cfg.PaymentCurrency,
		cfg.PaymentLockTTL,
	)

	// Transactional email is optional
	var notifier services.Notifier
	if cfg.SendsMail() {
		notifier = services.NewMailer(services.MailConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
			Timeout:   cfg.MailTimeout,
		})
	} else {
		log.Println("SendGrid not configured. Payment receipts and rider review emails are disabled")
	}

	// Initialize router
	r := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	// Serve locally stored uploads
	if !storage.IsUsingS3() {
		r.Static("/uploads", storage.UploadDir())
	}

	handlers.RegisterRoutes(r, handlers.Dependencies{
		Store:    store,
		Payments: payments,
		Verifier: verifier,
		Events:   redisClient,
		Notifier: notifier,
		Images:   storage,
		Hub:      hub,
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
