package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/pcardgo/internal/ai"
	"github.com/xelth-com/pcardgo/internal/cache"
	"github.com/xelth-com/pcardgo/internal/config"
	"github.com/xelth-com/pcardgo/internal/database"
	"github.com/xelth-com/pcardgo/internal/handlers"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/policy"
	"github.com/xelth-com/pcardgo/internal/services/storage"
	"github.com/xelth-com/pcardgo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.PurchaseRequest{},
		&models.ApprovalSignature{},
		&models.Receipt{},
		&models.CategoryBudget{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Policy engine with configured approver contacts
	engine := policy.NewEngine(cfg.ApproverDirectory())

	// 5. Live event hub for dashboard updates
	hub := websocket.NewHub()
	go hub.Run()

	// 6. Receipt storage (MinIO or local directory)
	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize receipt storage: %v", err)
	}

	// 7. Set up HTTP router
	router := handlers.NewRouter(db, cfg, engine, hub, store)

	// 8. AI receipt reviewer (optional, needs GEMINI_API_KEY)
	var gemini *ai.GeminiClient
	if cfg.Gemini.APIKey != "" {
		gemini, err = ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("⚠️ AI: Failed to init Gemini client: %v", err)
		} else {
			router.SetReviewer(ai.NewReceiptReviewer(gemini))
			log.Printf("✅ AI: Receipt verification enabled (%s)", cfg.Gemini.Model)
		}
	} else {
		log.Println("⚠️ AI: GEMINI_API_KEY not set, receipt verification disabled")
	}

	// 9. Dashboard cache (optional, needs REDIS_ADDR)
	dashCache := cache.New(context.Background(), cfg.Redis)
	router.SetCache(dashCache)

	// 10. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 P-Card server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close AI client and cache
	if gemini != nil {
		gemini.Close()
	}
	if err := dashCache.Close(); err != nil {
		log.Printf("Cache close error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
