package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"chatrelay/internal/config"
	"chatrelay/internal/conversation"
	"chatrelay/internal/gateway"
	"chatrelay/internal/handler"
	"chatrelay/internal/middleware"
	"chatrelay/internal/notify"
	"chatrelay/internal/service/dispatch"
	"chatrelay/internal/service/document"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"backend_url", cfg.BackendURL,
		"conversation_id", cfg.ConversationID,
	)

	// The session owns exactly one conversation; its id is still passed
	// end-to-end on every backend request.
	store := conversation.New(cfg.ConversationID)
	notifier := notify.New(config.NotificationTTL)

	// Gateway - the only component that knows the backend's address
	gw := gateway.New(cfg.BackendURL, logger)
	proxy := gateway.NewProxy(gw, logger)

	// Orchestration services
	dispatcher := dispatch.New(store, gw, logger)
	manager := document.NewManager(gw, notifier, logger)

	// Handlers
	convHandler := handler.NewConversationHandler(store, dispatcher, logger)
	docHandler := handler.NewDocumentHandler(manager, store.ID(), logger)
	notifHandler := handler.NewNotificationHandler(notifier)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check and metrics
	mux.HandleFunc("GET /health", handler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Pass-through proxy surface - mirrors the backend protocol under /api
	mux.HandleFunc("POST /api/chat", proxy.Chat)
	mux.HandleFunc("POST /api/upload-pdf", proxy.UploadPDF)
	mux.HandleFunc("GET /api/documents", proxy.ListDocuments)
	mux.HandleFunc("DELETE /api/documents/{doc_id}", proxy.DeleteDocument)

	// Orchestration surface - drives the session's conversation
	mux.HandleFunc("GET /conversation", convHandler.GetConversation)
	mux.HandleFunc("POST /conversation/messages", convHandler.SendMessage)
	mux.HandleFunc("POST /conversation/documents", docHandler.Upload)
	mux.HandleFunc("GET /conversation/documents", docHandler.List)
	mux.HandleFunc("DELETE /conversation/documents/{id}", docHandler.Delete)
	mux.HandleFunc("GET /notifications", notifHandler.List)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	h = middleware.Metrics()(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server. WriteTimeout stays generous: a chat turn is only
	// as fast as the backend's model call.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
