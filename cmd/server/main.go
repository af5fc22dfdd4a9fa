package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatbackend/internal/config"
	"chatbackend/internal/handler"
	"chatbackend/internal/middleware"
	"chatbackend/internal/prompts"
	"chatbackend/internal/repository"
	serviceLLM "chatbackend/internal/service/llm"
	"chatbackend/internal/service/llm/chat"
	"chatbackend/internal/service/llm/exchange"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Structured logging, optionally teed into a rotating log file
	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}
	logger := config.NewLogger(cfg, logOutput)
	logger = logger.With("service", "chat-backend")
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreDriver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close(context.Background())
	logger.Info("store connected", "driver", store.Driver)

	promptSet, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		log.Fatalf("Failed to load prompts: %v", err)
	}

	aiClient, err := serviceLLM.SetupClient(cfg, promptSet, logger)
	if err != nil {
		log.Fatalf("Failed to set up AI client: %v", err)
	}

	loc, _ := cfg.Location() // checked by Validate

	chatService := chat.NewService(store.Chats, store.Messages, store.Tx, loc, logger)
	exchangeService := exchange.NewService(store.Chats, store.Messages, aiClient, promptSet, exchange.Config{
		HistoryWindow: cfg.HistoryWindow,
		Location:      loc,
	}, logger)

	chatHandler := handler.NewChatHandler(chatService, exchangeService, logger)
	healthHandler := handler.NewHealthHandler(store, store.Driver, logger)
	logger.Info("services initialized")

	// Go 1.22+ enhanced patterns
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, chatHandler, healthHandler)

	// Order: CORS → Logging → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	}).Handler(h)

	// WriteTimeout leaves room for a full AI completion
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout*2 + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
