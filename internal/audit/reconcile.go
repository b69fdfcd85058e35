package audit

import (
	"context"

	"github.com/creitz/hn-audit/internal/domain"
)

// Reconcile checks one root's advertised descendant count against an
// independent traversal. A root that cannot be fetched, or that makes no
// claim, yields a skipped verdict rather than a failure; a mismatch is
// recorded in the verdict and never aborts the caller's run.
func (a *Auditor) Reconcile(ctx context.Context, rootID int) (domain.Verdict, error) {
	verdict := domain.Verdict{RootID: rootID, Status: domain.StatusSkipped}

	root, err := a.fetcher.Fetch(ctx, rootID)
	if err != nil {
		return verdict, err
	}
	if root == nil || root.Descendants == nil {
		return verdict, nil
	}

	computed, err := a.CountDescendants(ctx, rootID)
	if err != nil {
		return verdict, err
	}

	verdict.ReportedCount = root.Descendants
	verdict.ComputedCount = computed
	if computed == *root.Descendants {
		verdict.Status = domain.StatusMatch
	} else {
		verdict.Status = domain.StatusMismatch
	}
	return verdict, nil
}
