package main

import (
	"context"
	"fmt"
	"log"

	"users-rest-api/core"
)

func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect mongo: %v", err)
	}
	defer db.Client().Disconnect(ctx)

	// Login limiter is optional: no redis configured means no limiting.
	var limiter *core.LoginLimiter
	if cfg.RedisURL != "" {
		redisClient, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer redisClient.Close()
		limiter = core.NewLoginLimiter(redisClient, cfg.LoginWindow(), cfg.LoginMaxAttempts)
	}

	tokens, err := core.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenTTL())
	if err != nil {
		log.Fatalf("failed to init token service: %v", err)
	}

	users := core.NewMongoUserRepository(db)
	accounts := core.NewAccountService(users, core.NewBcryptHasher(), tokens)

	router := core.NewRouter(cfg, users, accounts, tokens, limiter)

	addr := fmt.Sprintf(":%s", cfg.Port)
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		log.Printf("starting api server on %s (tls)", addr)
		if err := router.RunTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile); err != nil {
			log.Fatalf("server failed: %v", err)
		}
		return
	}
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
