package gtfsrt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// Feed holds the most recent outage snapshot of one alerts URL. It is safe
// for concurrent use; readers never block on a fetch in progress.
type Feed struct {
	url    string
	client *Client
	log    *slog.Logger

	mu   sync.RWMutex
	snap *Snapshot
	at   time.Time
}

// NewFeed creates a feed for url. A nil logger uses the default one.
func NewFeed(url string, client *Client, logger *slog.Logger) *Feed {
	if client == nil {
		client = NewClient(10 * time.Second)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{url: url, client: client, log: logger.With("component", "gtfsrt", "url", url)}
}

// Refresh fetches and parses the feed, replacing the current snapshot only on
// success.
func (f *Feed) Refresh(ctx context.Context) error {
	data, err := f.client.Fetch(ctx, f.url)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return f.Load(data)
}

// Load parses a raw FeedMessage and installs it as the current snapshot.
func (f *Feed) Load(data []byte) error {
	snap, err := ParseOutages(data)
	if err != nil {
		return fmt.Errorf("alerts feed: %w", err)
	}
	f.mu.Lock()
	f.snap = snap
	f.at = time.Now()
	f.mu.Unlock()
	f.log.Debug("outage snapshot loaded", "outages", len(snap.Outages))
	return nil
}

// Current returns the latest snapshot, or nil before the first successful load.
func (f *Feed) Current() *Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

// LoadedAt is when the current snapshot was installed
func (f *Feed) LoadedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.at
}

// Run refreshes the feed every interval until ctx is done. Failed refreshes
// are logged and the previous snapshot is kept.
func (f *Feed) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := f.Refresh(ctx); err != nil && ctx.Err() == nil {
			f.log.Warn("alerts refresh failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
