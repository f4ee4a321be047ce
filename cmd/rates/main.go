package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/atmnet/backend/internal/config"
	"github.com/atmnet/backend/internal/database"
	"github.com/atmnet/backend/internal/rates"
)

// The rates updater fetches the daily exchange rates, publishes them to Redis
// for the servers and mirrors them to the local rates file.
func main() {
	once := flag.Bool("once", false, "refresh a single time and exit")
	flag.Parse()

	config.Init()
	cfg := config.Load().Rates
	if cfg.APIKey == "" {
		log.Fatal("[RATES] API_KEY must be set")
	}

	redisClient := database.InitRedis()
	var store rates.Store
	if redisClient != nil {
		defer redisClient.Close()
		store = rates.NewRedisStore(redisClient)
	}

	provider := rates.NewProvider(cfg.Currencies...)
	refresher := rates.NewRefresher(rates.NewHTTPFetcher(cfg.APIURL, cfg.APIKey), store, provider, rates.RefresherConfig{
		Base:       cfg.BaseCurrency,
		Currencies: cfg.Currencies,
		Interval:   cfg.RefreshInterval,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := refresh(ctx, refresher, cfg.FilePath); err != nil {
			log.Fatalf("[RATES] Refresh failed: %v", err)
		}
		return
	}

	log.Printf("[RATES] Updater started, refreshing every %s", cfg.RefreshInterval)
	for {
		if err := refresh(ctx, refresher, cfg.FilePath); err != nil {
			log.Printf("[RATES] Refresh failed, keeping previous snapshot: %v", err)
		}
		select {
		case <-ctx.Done():
			log.Println("[RATES] Updater stopped")
			return
		case <-time.After(cfg.RefreshInterval):
		}
	}
}

func refresh(ctx context.Context, refresher *rates.Refresher, path string) error {
	snapshot, err := refresher.RefreshOnce(ctx)
	if err != nil {
		return err
	}
	if err := rates.WriteFile(path, snapshot); err != nil {
		return err
	}
	log.Printf("[RATES] Rates updated successfully for %s, written to %s", snapshot.SnapshotDate, path)
	return nil
}
