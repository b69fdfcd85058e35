package hn

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/creitz/hn-audit/internal/domain"
)

// MockClient implements the same read surface as Client but serves a
// scripted in-memory tree. Per-ID latency and forced unavailability let
// tests exercise reordered completions and missing nodes.
type MockClient struct {
	mu      sync.Mutex
	items   map[int]domain.Item
	down    map[int]bool
	latency map[int]time.Duration
	listing []int
	fetches int
}

func NewMockClient() *MockClient {
	return &MockClient{
		items:   make(map[int]domain.Item),
		down:    make(map[int]bool),
		latency: make(map[int]time.Duration),
	}
}

// Seed installs items, keyed by their IDs.
func (m *MockClient) Seed(items ...domain.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.items[it.ID] = it
	}
}

// SetListing fixes the top-stories response.
func (m *MockClient) SetListing(ids ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listing = ids
}

// SetUnavailable makes fetches of id return nil even when the item is seeded.
func (m *MockClient) SetUnavailable(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.down[id] = true
}

// SetLatency delays fetches of id by d.
func (m *MockClient) SetLatency(id int, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency[id] = d
}

// Fetches reports how many Fetch calls have been issued.
func (m *MockClient) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func (m *MockClient) TopStories(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.listing), nil
}

func (m *MockClient) Fetch(ctx context.Context, id int) (*domain.Item, error) {
	m.mu.Lock()
	m.fetches++
	d := m.latency[id]
	down := m.down[id]
	item, ok := m.items[id]
	m.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if down || !ok {
		return nil, nil
	}
	cp := item
	return &cp, nil
}

// SeedSampleTree loads a small fixed corpus for mock-mode runs: two
// consistent stories, a job, and one story whose advertised count is off by
// one so a full run demonstrates mismatch detection.
func (m *MockClient) SeedSampleTree() {
	four, one, zero, three := 4, 1, 0, 3

	m.Seed(
		domain.Item{ID: 100, Type: domain.KindStory, By: "pg", Title: "A consistent story", Kids: []int{101, 102}, Descendants: &four},
		domain.Item{ID: 101, Type: domain.KindComment, By: "alice", Parent: 100, Kids: []int{103}},
		domain.Item{ID: 102, Type: domain.KindComment, By: "bob", Parent: 100, Kids: []int{104}},
		domain.Item{ID: 103, Type: domain.KindComment, By: "carol", Parent: 101},
		domain.Item{ID: 104, Type: domain.KindComment, By: "dave", Parent: 102},

		domain.Item{ID: 200, Type: domain.KindStory, By: "dang", Title: "One reply", Kids: []int{201}, Descendants: &one},
		domain.Item{ID: 201, Type: domain.KindComment, By: "erin", Parent: 200},

		domain.Item{ID: 300, Type: domain.KindJob, By: "whoishiring", Title: "Hiring", Descendants: &zero},

		// Claims three descendants but only two are reachable.
		domain.Item{ID: 400, Type: domain.KindStory, By: "tptacek", Title: "Overcounted story", Kids: []int{401, 402}, Descendants: &three},
		domain.Item{ID: 401, Type: domain.KindComment, By: "frank", Parent: 400},
		domain.Item{ID: 402, Type: domain.KindComment, By: "grace", Parent: 400},
	)
	m.SetListing(100, 200, 300, 400)
}
