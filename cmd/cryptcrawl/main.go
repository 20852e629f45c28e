// Package main is the entry point for cryptcrawl.
package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/samdwyer/cryptcrawl/internal/game"
	"github.com/samdwyer/cryptcrawl/internal/telemetry"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	g, err := game.New(game.Config{Seed: seedFromEnv()})
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// seedFromEnv reads CRYPTCRAWL_SEED for reproducible runs; 0 means random.
func seedFromEnv() int64 {
	raw := os.Getenv("CRYPTCRAWL_SEED")
	if raw == "" {
		return 0
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("Ignoring invalid CRYPTCRAWL_SEED %q: %v", raw, err)
		return 0
	}
	return seed
}
