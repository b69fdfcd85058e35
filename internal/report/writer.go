package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/creitz/hn-audit/internal/domain"
)

// WriterService drains a verdict channel into an NDJSON file, one verdict
// per line, so a run's per-root results survive as a machine-readable log.
type WriterService struct {
	FilePath string
}

func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan domain.Verdict) {
	defer wg.Done()

	os.MkdirAll(filepath.Dir(w.FilePath), 0755)
	f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Drain so producers never block on a missing file.
		for range input {
		}
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for verdict := range input {
		enc.Encode(verdict)
	}
}
