package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"complainthub/backend/internal/api/handler"
	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/config"
	"complainthub/backend/internal/eventhub"
	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/session"
	"complainthub/backend/internal/storage"
	"complainthub/backend/internal/telegram"
)

// setupStorage selects the KV backend. The Redis client is also returned so
// the event broker can reuse it; it is nil for the Postgres backend.
func setupStorage(ctx context.Context, cfg config.Config, log *logging.Logger) (storage.KV, *redis.Client, error) {
	if cfg.StorageBackend == "postgres" {
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			return nil, nil, err
		}
		kv, err := storage.NewGormKV(db)
		if err != nil {
			return nil, nil, err
		}
		log.Info("storage ready", "backend", "postgres")
		return kv, nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, nil, err
	}
	log.Info("storage ready", "backend", "redis", "addr", cfg.RedisAddr)
	return storage.NewRedisKV(rdb), rdb, nil
}

func main() {
	dotenvErr := godotenv.Load()

	log := logging.Default("server")
	if dotenvErr != nil {
		log.Warn("no .env file loaded, using environment defaults")
	}
	cfg := config.Load()
	ctx := context.Background()

	kv, rdb, err := setupStorage(ctx, cfg, log)
	if err != nil {
		log.Error("storage setup failed", "error", err)
		os.Exit(1)
	}

	store := storage.NewStore(kv, log)
	state := session.NewState(store)
	if err := state.Rehydrate(ctx); err != nil {
		log.Error("session rehydrate failed", "error", err)
		os.Exit(1)
	}

	if err := complaint.SeedSampleData(ctx, store, log); err != nil {
		log.Error("sample data seeding failed", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(store, state, auth.DemoUsers(), log)
	authSvc.Latency = cfg.LoginLatency
	repo := complaint.NewRepository(store, log)

	var broker eventhub.Broker
	if rdb != nil {
		broker = eventhub.NewRedisBroker(rdb, eventhub.DefaultEventChannel, log)
	}
	hub := eventhub.NewHub(broker, log)
	go hub.Run(ctx)

	var notifier handler.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Error("telegram notifier unavailable", "error", err)
		} else {
			notifier = n
		}
	}

	r := gin.Default()
	h := handler.New(authSvc, repo, state, hub, notifier, cfg, log)
	h.Routes(r)

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Info("listening", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
