package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/mgregerson/sharebnb/internal/config"
	"github.com/mgregerson/sharebnb/internal/database"
	postgresrepo "github.com/mgregerson/sharebnb/internal/repository/postgres"
	"github.com/mgregerson/sharebnb/internal/service"
	"github.com/mgregerson/sharebnb/internal/storage"
	"github.com/mgregerson/sharebnb/internal/transport/http/handlers"
	"github.com/mgregerson/sharebnb/internal/transport/http/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded")
	}

	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatal(err)
	}
	log.Println("Connected to database")

	// Photo storage
	photos, err := storage.NewDiskStore(cfg.PhotoDir)
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	rentalRepo := postgresrepo.NewRentalRepo(pool)
	reservationRepo := postgresrepo.NewReservationRepo(pool)
	conversationRepo := postgresrepo.NewConversationRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	rentalService := service.NewRentalService(rentalRepo, userRepo, photos)
	reservationService := service.NewReservationService(reservationRepo, rentalRepo, userRepo)
	messagingService := service.NewMessagingService(userRepo, conversationRepo, messageRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	rentalHandler := handlers.NewRentalHandler(rentalService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	messagingHandler := handlers.NewMessagingHandler(messagingService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Auth
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Users
	mux.HandleFunc("GET /users/{username}", rentalHandler.UserProfile)

	// Rentals
	mux.HandleFunc("GET /rentals", rentalHandler.List)
	mux.HandleFunc("POST /rentals/{username}/add", rentalHandler.Add)
	mux.HandleFunc("GET /rentals/{key}", rentalHandler.Get)

	// Reservations
	mux.HandleFunc("GET /reservations/{username}/{$}", reservationHandler.List)
	mux.HandleFunc("GET /reservations/{username}/{id}", reservationHandler.Get)
	mux.HandleFunc("POST /reservations/{username}/add", reservationHandler.Add)

	// Messaging
	mux.HandleFunc("GET /messages/{username}", messagingHandler.UserMessages)
	mux.HandleFunc("GET /messages/{username}/{id}", messagingHandler.UserMessage)
	mux.Handle("POST /messages", auth(http.HandlerFunc(messagingHandler.SendMessage)))
	mux.Handle("POST /conversations", auth(http.HandlerFunc(messagingHandler.CreateConversation)))
	mux.HandleFunc("GET /conversations/{username}", messagingHandler.UserConversations)
	mux.HandleFunc("GET /conversations/{id}/messages", messagingHandler.ConversationMessages)
	mux.HandleFunc("GET /conversations/{sender}/{recipient}/messages", messagingHandler.PairMessages)

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
