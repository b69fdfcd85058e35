package audit

import "context"

// SelectRoots returns, preserving input order, the roots whose advertised
// descendant count lies strictly inside (min, max). An unavailable root is
// skipped; a root with no claim counts as zero. The cap is on accepted
// results: scanning stops as soon as limit roots have been accepted, so
// fetches issued are bounded by the candidates scanned up to that point, not
// by limit itself. limit <= 0 means no cap. Fewer than limit results is not
// an error.
func (a *Auditor) SelectRoots(ctx context.Context, roots []int, min, max, limit int) ([]int, error) {
	var selected []int
	for _, id := range roots {
		if limit > 0 && len(selected) >= limit {
			break
		}

		item, err := a.fetcher.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}

		count := 0
		if item.Descendants != nil {
			count = *item.Descendants
		}
		if count > min && count < max {
			selected = append(selected, id)
		}
	}
	return selected, nil
}
