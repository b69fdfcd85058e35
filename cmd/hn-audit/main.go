package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/creitz/hn-audit/internal/audit"
	"github.com/creitz/hn-audit/internal/domain"
	"github.com/creitz/hn-audit/internal/hn"
	"github.com/creitz/hn-audit/internal/ingest"
	"github.com/creitz/hn-audit/internal/report"
	"github.com/joho/godotenv"
)

// maxListing is the service's documented cap on top-stories entries.
const maxListing = 500

func main() {
	// 1. Setup
	godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	svc, err := hn.NewService()
	if err != nil {
		logger.Error("Failed to initialize API client", "error", err)
		os.Exit(1)
	}
	logger.Info("API client initialized", "mode", os.Getenv("AUDIT_MODE"))

	auditor := audit.New(svc, envInt("AUDIT_CONCURRENCY", audit.DefaultWorkers))

	// 2. Graceful Shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// 3. Candidate roots: CSV override if present, live listing otherwise
	roots, err := ingest.LoadRootIDs("input/roots.csv")
	if err != nil {
		roots, err = svc.TopStories(ctx)
		if err != nil {
			logger.Error("Top stories listing failed", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("Candidate roots loaded", "count", len(roots))

	failed := false
	if len(roots) > maxListing {
		failed = true
		logger.Warn("Listing exceeds documented cap", "count", len(roots), "cap", maxListing)
	}

	// 4. Schema-check every listed root
	items, err := auditor.FetchMany(ctx, roots)
	if err != nil {
		logger.Error("Batch fetch failed", "error", err)
		os.Exit(1)
	}
	for i, item := range items {
		for _, v := range audit.ValidateRoot(item, roots[i]) {
			failed = true
			logger.Warn("Schema violation", "id", v.ID, "field", v.Field, "detail", v.Detail)
		}
	}

	// 5. Keep reconciliation cheap: small subtrees only, a handful per run
	selected, err := auditor.SelectRoots(ctx, roots,
		envInt("AUDIT_MIN_COMMENTS", 0),
		envInt("AUDIT_MAX_COMMENTS", 10),
		envInt("AUDIT_MAX_ROOTS", 6),
	)
	if err != nil {
		logger.Error("Root selection failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Roots selected for reconciliation", "count", len(selected))

	// 6. Reply spot-check: every direct reply must point back at its root
	for _, id := range selected {
		root, err := svc.Fetch(ctx, id)
		if err != nil {
			logger.Error("Root fetch failed", "root", id, "error", err)
			os.Exit(1)
		}
		if root == nil {
			continue
		}
		replies, err := auditor.FetchMany(ctx, root.Kids)
		if err != nil {
			logger.Error("Reply fetch failed", "root", id, "error", err)
			os.Exit(1)
		}
		for _, reply := range replies {
			for _, v := range audit.ValidateReply(reply, id) {
				failed = true
				logger.Warn("Schema violation", "id", v.ID, "field", v.Field, "detail", v.Detail)
			}
		}
	}

	// 7. Reconcile and stream verdicts
	reportPath := os.Getenv("AUDIT_REPORT_PATH")
	if reportPath == "" {
		reportPath = "data/verdicts.json"
	}
	verdicts := make(chan domain.Verdict, len(selected))
	var writerWg sync.WaitGroup
	writer := &report.WriterService{FilePath: reportPath}
	writerWg.Add(1)
	go writer.Start(&writerWg, verdicts)

	for _, id := range selected {
		verdict, err := auditor.Reconcile(ctx, id)
		if err != nil {
			logger.Error("Reconciliation failed", "root", id, "error", err)
			failed = true
			break
		}
		verdicts <- verdict

		switch verdict.Status {
		case domain.StatusMismatch:
			failed = true
			logger.Warn("Descendant count mismatch",
				"root", verdict.RootID,
				"reported", *verdict.ReportedCount,
				"computed", verdict.ComputedCount)
		case domain.StatusSkipped:
			logger.Info("No claim to check", "root", verdict.RootID)
		default:
			logger.Info("Counts agree", "root", verdict.RootID, "count", verdict.ComputedCount)
		}
	}
	close(verdicts)
	writerWg.Wait()

	if failed {
		logger.Error("Audit failed")
		os.Exit(1)
	}
	logger.Info("Audit passed", "roots", len(selected))
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
