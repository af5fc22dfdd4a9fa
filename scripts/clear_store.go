package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"chatbackend/internal/config"
	"chatbackend/internal/repository"

	"github.com/joho/godotenv"
)

// Deletes every chat and message in the store selected by STORE_DRIVER.
// Tables, collections and indexes are kept.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Environment == "prod" && os.Getenv("CONFIRM_CLEAR") != "yes" {
		log.Fatal("Refusing to clear a prod store without CONFIRM_CLEAR=yes")
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, config.NewLogger(cfg, os.Stderr))
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer func() { _ = store.Close(ctx) }() // Error ignored: script exiting

	if err := store.Clear(ctx); err != nil {
		log.Fatalf("Failed to clear store: %v", err)
	}

	fmt.Printf("All chats and messages deleted (driver: %s, prefix: %s)\n", store.Driver, cfg.TablePrefix)
}
