// Package audit verifies that the content API's advertised aggregate counts
// agree with the subtrees actually reachable through child links, and that
// served items match the expected schema.
package audit

import (
	"context"

	"github.com/creitz/hn-audit/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds in-flight fetches when no ceiling is configured.
const DefaultWorkers = 8

// Auditor runs consistency checks against a Fetcher. It carries no state
// between calls; every operation is an independent pass over live data.
type Auditor struct {
	fetcher domain.Fetcher
	workers int
}

func New(f domain.Fetcher, workers int) *Auditor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Auditor{fetcher: f, workers: workers}
}

// FetchMany retrieves ids concurrently with at most the configured number of
// fetches in flight. The result is index-aligned: results[i] holds the item
// for ids[i], or nil if it was unavailable. An unavailable item never
// disturbs its siblings; every input gets an outcome. A fatal fetcher error
// cancels the rest of the batch and is returned.
func (a *Auditor) FetchMany(ctx context.Context, ids []int) ([]*domain.Item, error) {
	results := make([]*domain.Item, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			item, err := a.fetcher.Fetch(ctx, id)
			if err != nil {
				return err
			}
			results[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
