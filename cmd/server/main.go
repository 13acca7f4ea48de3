package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"ticketbooth/internal/config"
	"ticketbooth/internal/database"
	"ticketbooth/internal/handlers"
	"ticketbooth/internal/middleware"
	"ticketbooth/internal/repositories"
	"ticketbooth/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if cfg.Seed.Enabled {
		if err := database.Seed(db); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	eventService := services.NewEventService(eventRepo, commentRepo)
	bookingService := services.NewBookingService(eventRepo, orderRepo)
	orderService := services.NewOrderService(orderRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, store)
	eventHandler := handlers.NewEventHandler(eventService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	healthHandler := handlers.NewHealthHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(authService, store)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(authMiddleware.LoadUser)

	r.Get("/health", healthHandler.Check)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.CurrentUser)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.Get("/categories", eventHandler.Categories)
		r.Get("/{id}", eventHandler.Get)
		r.Get("/{id}/comments", eventHandler.ListComments)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", eventHandler.Create)
			r.Post("/{id}/cancel", eventHandler.Cancel)
			r.Delete("/{id}", eventHandler.Delete)
			r.Post("/{id}/comments", eventHandler.CreateComment)
			r.Post("/{id}/bookings", bookingHandler.Create)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", orderHandler.List)
		r.Get("/{reference}", orderHandler.Get)
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
