package rates

import (
	"log"
	"sync/atomic"
)

// Provider publishes the current snapshot. Readers get one consistent version
// per call; Replace swaps the whole table.
type Provider struct {
	current  atomic.Pointer[Snapshot]
	required []string
}

func NewProvider(required ...string) *Provider {
	return &Provider{required: required}
}

// Current returns the active table or ErrNoSnapshot.
func (p *Provider) Current() (RateTable, error) {
	snapshot := p.current.Load()
	if snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return snapshot, nil
}

// Replace validates and installs a new snapshot. An invalid snapshot leaves the
// previous one in place.
func (p *Provider) Replace(snapshot *Snapshot) error {
	if snapshot == nil {
		return ErrInvalidSnapshot
	}
	if err := snapshot.Validate(p.required...); err != nil {
		return err
	}
	p.current.Store(snapshot)
	log.Printf("[RATES] Installed snapshot for %s (%d currencies)", snapshot.SnapshotDate, len(snapshot.Currencies()))
	return nil
}
