package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"filmvault-tg-bot/internal/bot"
	"filmvault-tg-bot/internal/config"
	"filmvault-tg-bot/internal/logging"
	"filmvault-tg-bot/internal/session"
	"filmvault-tg-bot/internal/storage"
	"filmvault-tg-bot/internal/tg"
	"filmvault-tg-bot/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	db, err := storage.NewMongo(connectCtx, cfg.MongoURI, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(shutdownCtx)
	}()

	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions = session.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Infof("session store: redis at %s", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
		log.Info("session store: in-memory")
	}

	client, err := tg.NewClient(cfg.Token)
	if err != nil {
		log.WithError(err).Fatal("failed to authenticate with telegram")
	}
	log.Infof("authorized as @%s", client.Username())

	srv := web.NewServer(cfg.Port, log)
	srv.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go web.NewPinger(cfg.PingURL, log).Run(ctx)

	b := bot.New(cfg, client, db, sessions, log)
	updates := client.Updates()
	log.Info("bot is running")

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			client.StopPolling()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(update)
		}
	}
}
