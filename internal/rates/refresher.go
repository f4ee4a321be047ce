package rates

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Refresher rebuilds the snapshot from the external source on a schedule.
type Refresher struct {
	fetcher    Fetcher
	store      Store
	provider   *Provider
	base       string
	currencies []string
	interval   time.Duration
	now        func() time.Time
}

type RefresherConfig struct {
	Base       string
	Currencies []string
	Interval   time.Duration
}

// NewRefresher wires the job. store may be nil.
func NewRefresher(fetcher Fetcher, store Store, provider *Provider, cfg RefresherConfig) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	return &Refresher{
		fetcher:    fetcher,
		store:      store,
		provider:   provider,
		base:       cfg.Base,
		currencies: cfg.Currencies,
		interval:   cfg.Interval,
		now:        time.Now,
	}
}

// Bootstrap installs the last stored snapshot, if any.
func (r *Refresher) Bootstrap(ctx context.Context) error {
	if r.store == nil {
		return ErrNoSnapshot
	}
	snapshot, err := r.store.Latest(ctx)
	if err != nil {
		return err
	}
	return r.provider.Replace(snapshot)
}

// RefreshOnce fetches, builds, validates, stores and installs one snapshot.
// The previous snapshot stays active on any failure.
func (r *Refresher) RefreshOnce(ctx context.Context) (*Snapshot, error) {
	quotes, err := r.fetcher.FetchBaseRates(ctx, r.base, r.currencies)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}

	date := r.now().UTC().Format("2006-01-02")
	snapshot, err := BuildFromBase(date, r.base, quotes)
	if err != nil {
		return nil, err
	}
	if err := r.provider.Replace(snapshot); err != nil {
		return nil, err
	}

	if r.store != nil {
		if err := r.store.Save(ctx, snapshot); err != nil {
			log.Printf("[RATES] Snapshot for %s installed but not persisted: %v", date, err)
		}
	}
	return snapshot, nil
}

// Run refreshes immediately and then every interval until ctx ends.
func (r *Refresher) Run(ctx context.Context) {
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[RATES] Refresher stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	snapshot, err := r.RefreshOnce(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[RATES] Refresh failed, keeping previous snapshot: %v", err)
		}
		return
	}
	log.Printf("[RATES] Rates updated successfully for %s", snapshot.SnapshotDate)
}
