package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"LifeMarket/internal/api"
	"LifeMarket/internal/collector"
	"LifeMarket/internal/config"
	"LifeMarket/internal/notifier"
	"LifeMarket/internal/recorder"
	"LifeMarket/internal/scheduler"
	"LifeMarket/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] LifeMarket starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init session store
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("[FATAL] init %s session store: %v", cfg.Store.Driver, err)
	}
	defer store.Close()
	log.Printf("[INFO] session store: %s (%s)", cfg.Store.Driver, cfg.Store.Path)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := openRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Telegram notifier; a nil Sender keeps the digest log-only
	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Println("[WARN] telegram not configured, digests will only be logged")
	}

	// Init scheduler
	col := collector.NewCollector(store)
	sched := scheduler.NewScheduler(ctx, col, sender, rec, cfg.Timeframe())
	if err := sched.Register(cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing digest now")
		go sched.RunDigestNow()
	}

	// HTTP API
	a := api.New(store, rec, cfg.Market.DefaultInitialScore, cfg.Timeframe())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] HTTP API listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
			cancel()
		}
	}()

	log.Println("[INFO] LifeMarket is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] LifeMarket stopped")
}

func openStore(cfg *config.Config) (session.Store, error) {
	if err := ensureDir(cfg.Store.Path); err != nil {
		return nil, err
	}
	if cfg.Store.Driver == config.StoreFile {
		return session.NewFileStore(cfg.Store.Path)
	}
	return session.NewSQLiteStore(cfg.Store.Path)
}

func openRecorder(path string) (*recorder.SQLiteRecorder, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return recorder.NewSQLiteRecorder(path)
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
