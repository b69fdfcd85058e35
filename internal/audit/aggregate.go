package audit

import "context"

// CountDescendants computes the number of nodes reachable from rootID via
// repeated child-link traversal, excluding the root itself. Each call is a
// fresh traversal; nothing is cached across calls.
//
// An unavailable root yields 0. An unavailable child still counts once in
// its parent's kid list; only its own descendants are lost. The traversal is
// breadth first, fetching each level through FetchMany so the concurrency
// ceiling also bounds tree walks, and keeps a visited set: an ID listed
// again deeper in the structure counts in that parent's kid list but is
// never re-expanded, so diamonds and cycles terminate without
// double-counting.
func (a *Auditor) CountDescendants(ctx context.Context, rootID int) (int, error) {
	root, err := a.fetcher.Fetch(ctx, rootID)
	if err != nil {
		return 0, err
	}
	if root == nil {
		return 0, nil
	}

	visited := map[int]struct{}{rootID: {}}
	total := len(root.Kids)
	frontier := unvisited(root.Kids, visited)

	for len(frontier) > 0 {
		items, err := a.FetchMany(ctx, frontier)
		if err != nil {
			return 0, err
		}

		var next []int
		for _, item := range items {
			if item == nil {
				continue
			}
			total += len(item.Kids)
			next = append(next, unvisited(item.Kids, visited)...)
		}
		frontier = next
	}
	return total, nil
}

// unvisited returns the ids not yet in seen, marking them as it goes.
// Duplicates within ids collapse to one entry.
func unvisited(ids []int, seen map[int]struct{}) []int {
	var out []int
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
