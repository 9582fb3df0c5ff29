package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"glow_server/config"
	"glow_server/routes"
	"glow_server/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("❌ JWT_SECRET not set")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWS.Region)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	authService := services.NewAuthService(cfg.JWT)
	neynarService := services.NewNeynarService(cfg.Neynar, cfg.App.URL)
	userProfileService := &services.UserProfileService{
		Dynamo:     dynamoService,
		Table:      cfg.Tables.Users,
		DailyLimit: cfg.App.DailyLimit,
	}
	unlockService := &services.UnlockService{
		Dynamo: dynamoService,
		Table:  cfg.Tables.Unlocks,
	}
	complimentService := &services.ComplimentService{
		Dynamo:          dynamoService,
		Users:           userProfileService,
		Unlocks:         unlockService,
		Caster:          neynarService,
		Table:           cfg.Tables.Compliments,
		UnlockThreshold: cfg.App.UnlockThreshold,
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to GLOW")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterAuthRoutes(r, authService)
	routes.RegisterUserProfileRoutes(r, userProfileService, authService)
	routes.RegisterComplimentRoutes(r, complimentService, authService)
	routes.RegisterNeynarRoutes(r, neynarService, authService)
	routes.RegisterUnlockRoutes(r, unlockService, complimentService, authService)
	routes.RegisterManifestRoutes(r, cfg)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, corsHandler))
}
