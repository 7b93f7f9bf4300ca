// Package relay implements the default Publisher and Querier over a
// set of nostr relays.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/sync/semaphore"
)

// maxConcurrentRelayOps bounds simultaneous per-relay publishes and
// queries across the pool.
const maxConcurrentRelayOps = 4

// Pool fans publishes and queries out across a relay list. Publish
// succeeds when any relay accepts; Query merges and deduplicates
// results from every reachable relay.
type Pool struct {
	pool  *nostr.SimplePool
	urls  []string
	retry *RetryPolicy
	sem   *semaphore.Weighted
}

// New creates a Pool over the given relay URLs.
func New(ctx context.Context, urls []string) (*Pool, error) {
	if len(urls) == 0 {
		return nil, errors.New("no relays configured")
	}
	return &Pool{
		pool:  nostr.NewSimplePool(ctx),
		urls:  urls,
		retry: DefaultRetryPolicy(),
		sem:   semaphore.NewWeighted(maxConcurrentRelayOps),
	}, nil
}

// Publish broadcasts a signed event to every relay, retrying transient
// failures per relay. It returns nil when at least one relay accepted
// the event.
func (p *Pool) Publish(ctx context.Context, event *nostr.Event) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted bool
		lastErr  error
	)

	for _, url := range p.urls {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		url := url
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.sem.Release(1)

			err := p.retry.Execute(func() error {
				r, err := p.pool.EnsureRelay(url)
				if err != nil {
					return err
				}
				return r.Publish(ctx, *event)
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lastErr = err
				slog.Debug("relay rejected event", "relay", url, "event_id", event.ID, "error", err)
				return
			}
			accepted = true
		}()
	}
	wg.Wait()

	if !accepted {
		return fmt.Errorf("no relay accepted event %s: %w", event.ID, lastErr)
	}
	return nil
}

// Query runs every filter against every relay until the context
// deadline and returns the merged, deduplicated results in first-seen
// order.
func (p *Pool) Query(ctx context.Context, filters []nostr.Filter) ([]*nostr.Event, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []*nostr.Event
		seen    = map[string]bool{}
		lastErr error
		reached bool
	)

	for _, url := range p.urls {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		url := url
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.sem.Release(1)

			r, err := p.pool.EnsureRelay(url)
			if err != nil {
				mu.Lock()
				lastErr = err
				mu.Unlock()
				return
			}

			for _, filter := range filters {
				events, err := r.QuerySync(ctx, filter)
				if err != nil {
					mu.Lock()
					lastErr = err
					mu.Unlock()
					continue
				}
				mu.Lock()
				reached = true
				for _, event := range events {
					if event == nil || seen[event.ID] {
						continue
					}
					seen[event.ID] = true
					results = append(results, event)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if !reached && lastErr != nil {
		return nil, fmt.Errorf("no relay reachable: %w", lastErr)
	}
	return results, nil
}
