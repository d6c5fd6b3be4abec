package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MK-CIAN/AWM/internal/config"
	"github.com/MK-CIAN/AWM/internal/database"
	"github.com/MK-CIAN/AWM/internal/handlers"
	"github.com/MK-CIAN/AWM/internal/hub"
	"github.com/MK-CIAN/AWM/internal/logging"
	"github.com/MK-CIAN/AWM/internal/middleware"
	"github.com/MK-CIAN/AWM/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logging.ParseLevel(cfg.Server.LogLevel)
	logger.SetLevel(level)
	logging.SetDefaultLevel(level)

	logger.Info("Starting AWM server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(userService, redisAdapter)
	profileService := services.NewProfileService(dbAdapter)
	friendService := services.NewFriendService(dbAdapter)
	eventService := services.NewEventService(dbAdapter)
	chatService := services.NewChatService(dbAdapter)
	audiotourService := services.NewAudiotourService(dbAdapter)

	chatHub := hub.New()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, authService)
	locationHandler := handlers.NewLocationHandler(profileService)
	friendHandler := handlers.NewFriendHandler(friendService)
	eventHandler := handlers.NewEventHandler(eventService)
	chatHandler := handlers.NewChatHandler(chatService, chatHub)
	audiotourHandler := handlers.NewAudiotourHandler(audiotourService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)

	// Location pings and chat posts are the write-heavy endpoints; cap them
	// per user per minute.
	locationLimiter := middleware.NewRateLimiter(redisDB.Client, 60, time.Minute, "ratelimit:location:", middleware.PerUserKey)
	chatLimiter := middleware.NewRateLimiter(redisDB.Client, 30, time.Minute, "ratelimit:chat:", middleware.PerUserKey)

	requireAuth := authMiddleware.RequireAuth

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.Handle("POST /api/auth/register", http.HandlerFunc(authHandler.Register))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(authHandler.Login))
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// Location endpoint
	mux.Handle("POST /api/location", requireAuth(locationLimiter.Middleware(http.HandlerFunc(locationHandler.Update))))
	mux.Handle("GET /api/location", requireAuth(http.HandlerFunc(locationHandler.Get)))

	// Friend endpoints
	mux.Handle("GET /api/friends/requests/pending", requireAuth(http.HandlerFunc(friendHandler.ListPending)))
	mux.Handle("POST /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("POST /api/friends/requests/respond", requireAuth(http.HandlerFunc(friendHandler.Respond)))
	mux.Handle("GET /api/friends/locations", requireAuth(http.HandlerFunc(friendHandler.Locations)))

	// Event endpoints
	mux.Handle("GET /api/events", http.HandlerFunc(eventHandler.List))
	mux.Handle("GET /api/events/saved", requireAuth(http.HandlerFunc(eventHandler.ListSaved)))
	mux.Handle("GET /api/events/{id}", http.HandlerFunc(eventHandler.Get))
	mux.Handle("POST /api/events/{id}/save", requireAuth(http.HandlerFunc(eventHandler.Save)))

	// Chat endpoints
	mux.Handle("GET /api/events/{id}/chat", http.HandlerFunc(chatHandler.GetRoom))
	mux.Handle("GET /api/events/{id}/chat/messages", http.HandlerFunc(chatHandler.ListMessages))
	mux.Handle("POST /api/events/{id}/chat/messages", requireAuth(chatLimiter.Middleware(http.HandlerFunc(chatHandler.PostMessage))))
	mux.Handle("GET /api/events/{id}/chat/stream", http.HandlerFunc(chatHandler.Stream))

	// Audiotour endpoint
	mux.Handle("GET /api/audiotours", http.HandlerFunc(audiotourHandler.List))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// The SSE chat stream holds its response open indefinitely; a write
		// timeout would sever every live feed.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
