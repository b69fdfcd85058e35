package hn

import (
	"fmt"
	"os"
	"time"

	"github.com/creitz/hn-audit/internal/domain"
)

// Service is the full read surface of the remote API: the listing endpoint
// plus single-item fetch.
type Service interface {
	domain.Fetcher
	domain.Lister
}

// NewService selects the implementation from AUDIT_MODE: "live" (the
// default) talks to the real API, "mock" serves the built-in sample tree.
func NewService() (Service, error) {
	switch mode := os.Getenv("AUDIT_MODE"); mode {
	case "", "live":
		return NewClient(
			os.Getenv("HN_API_BASE"),
			envDuration("HN_FETCH_TIMEOUT", 10*time.Second),
			envDuration("HN_RATE_EVERY", 100*time.Millisecond),
		), nil
	case "mock":
		m := NewMockClient()
		m.SeedSampleTree()
		return m, nil
	default:
		return nil, fmt.Errorf("unknown AUDIT_MODE: %s (use 'live' or 'mock')", mode)
	}
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
