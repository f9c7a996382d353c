package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fulfillment-service/config"
	"fulfillment-service/controllers"
	apperrors "fulfillment-service/errors"
	"fulfillment-service/logger"
	"fulfillment-service/repository"
	"fulfillment-service/routes"
	"fulfillment-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[FulfillmentService] ❌ Failed to load config: ", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	credentialJSON, err := repository.DecodeServiceAccount(cfg.ServiceAccount)
	if err != nil {
		log.Fatal("[FulfillmentService] ❌ ", apperrors.ErrCredential.With(err))
	}

	repo, err := repository.NewSheetsDeliveryRepo(context.Background(), credentialJSON, cfg.SpreadsheetID, cfg.SheetRange)
	if err != nil {
		log.Fatal("[FulfillmentService] ❌ Failed to connect to record store: ", err)
	}

	paypal := services.NewPayPalService(cfg.PayPalAPIBase, cfg.PayPalClientID, cfg.PayPalClientSecret)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	// The verify endpoint is called straight from buyers' browsers on
	// arbitrary storefront pages, so CORS stays permissive.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	vc := &controllers.VerifyController{
		PayPal:            paypal,
		Repo:              repo,
		Logger:            logger.Log,
		MarkDelivery:      cfg.MarkDelivery,
		MarkDeliveryFatal: cfg.MarkDeliveryFatal,
	}
	routes.RegisterVerifyRoutes(r, vc)

	log.Println("[FulfillmentService] ✅ Running on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[FulfillmentService] ❌ Server failed: ", err)
	}
}
