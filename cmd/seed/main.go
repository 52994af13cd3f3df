package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"

	"github.com/mesero-nana/api/internal/config"
	"github.com/mesero-nana/api/internal/repository"
	"github.com/mesero-nana/api/internal/store"
)

// Seeds the example orders into the configured Redis store so a demo
// environment starts with a populated board.
func main() {
	force := flag.Bool("force", false, "overwrite existing orders")
	flag.Parse()

	cfg := config.Load()
	if cfg.RedisAddr == "" {
		log.Fatal("REDIS_ADDR is required; seeding an in-memory store is pointless")
	}

	ctx := context.Background()
	kv := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer kv.Close()

	if err := kv.Ping(ctx); err != nil {
		log.Fatalf("Unable to connect to redis: %v", err)
	}

	if !*force {
		if _, err := kv.Get(ctx, repository.OrdersKey); err == nil {
			log.Fatal("Orders already exist; re-run with -force to overwrite")
		}
	}

	repo := repository.New(ctx, store.NewMemory(), true)
	orders := repo.List()

	raw, err := json.Marshal(orders)
	if err != nil {
		log.Fatalf("marshal orders: %v", err)
	}
	if err := kv.Set(ctx, repository.OrdersKey, string(raw)); err != nil {
		log.Fatalf("write orders: %v", err)
	}
	if err := kv.Set(ctx, repository.ArchivedKey, "[]"); err != nil {
		log.Fatalf("write archive: %v", err)
	}

	log.Printf("Seeded %d example orders", len(orders))
}
