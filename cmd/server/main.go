package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/mesero-nana/api/internal/auth"
	"github.com/mesero-nana/api/internal/config"
	"github.com/mesero-nana/api/internal/repository"
	"github.com/mesero-nana/api/internal/router"
	"github.com/mesero-nana/api/internal/simulator"
	"github.com/mesero-nana/api/internal/store"
	"github.com/mesero-nana/api/internal/ws"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Pick the snapshot store: Redis when configured and reachable,
	// otherwise in-memory only.
	var kv store.Store
	if cfg.RedisAddr != "" {
		r := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := r.Ping(ctx); err != nil {
			log.Printf("WARN: redis unreachable at %s, falling back to in-memory store: %v", cfg.RedisAddr, err)
			kv = store.NewMemory()
		} else {
			defer r.Close()
			kv = r
			log.Printf("Using redis store at %s", cfg.RedisAddr)
		}
	} else {
		kv = store.NewMemory()
		log.Println("Using in-memory store; orders will not survive restarts")
	}

	repo := repository.New(ctx, kv, cfg.SeedExamples)
	authSvc := auth.NewService(cfg.JWTSecret, auth.DefaultUsers())
	gen := simulator.New()

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, authSvc, repo, gen, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
