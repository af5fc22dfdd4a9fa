package main

import (
	"context"
	"flag"
	"log"
	"os"

	"chatbackend/internal/config"
	"chatbackend/internal/repository"
	"chatbackend/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	clearData := flag.Bool("clear", false, "Delete all chats and messages before seeding")
	schemaOnly := flag.Bool("schema-only", false, "Only create tables/indexes, don't seed chats")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: Cannot run -clear in production environment")
	}
	if cfg.StoreDriver == config.StoreMemory {
		log.Printf("Warning: STORE_DRIVER=memory, seeded chats vanish when this process exits")
	}

	logger := config.NewLogger(cfg, os.Stdout)
	ctx := context.Background()

	// Open creates the schema for every persistent driver
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close(ctx)

	if *schemaOnly {
		log.Printf("Schema ready (driver: %s, environment: %s)", store.Driver, cfg.Environment)
		return
	}

	if *clearData {
		log.Println("Clearing existing chats and messages...")
		if err := store.Clear(ctx); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
	}

	n, err := seed.NewSeeder(store.Chats, store.Messages, logger).SeedChats(ctx)
	if err != nil {
		log.Fatalf("Seeding failed after %d chats: %v", n, err)
	}
	log.Printf("Seeding complete: %d chats created (driver: %s)", n, store.Driver)
}
