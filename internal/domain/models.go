package domain

import "context"

// Kind values the item endpoint can return. Top-level listings only ever
// contain stories and jobs; everything else hangs off a root via Kids.
const (
	KindStory      = "story"
	KindJob        = "job"
	KindComment    = "comment"
	KindPoll       = "poll"
	KindPollOption = "pollopt"
)

// RootKind reports whether k may appear in the top-stories listing.
func RootKind(k string) bool {
	return k == KindStory || k == KindJob
}

// Item is one node of the content tree as served by the item endpoint.
// Descendants is a pointer because "the service makes no claim" and "the
// service claims zero" are different answers during reconciliation.
type Item struct {
	ID          int    `json:"id"`
	Deleted     bool   `json:"deleted,omitempty"`
	Type        string `json:"type"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Text        string `json:"text,omitempty"`
	Dead        bool   `json:"dead,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Kids        []int  `json:"kids,omitempty"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	Title       string `json:"title,omitempty"`
	Descendants *int   `json:"descendants,omitempty"`
}

// Fetcher retrieves single items. A (nil, nil) return means the item is
// unavailable: deleted, missing, throttled, or served malformed. Callers
// treat that as "contributes nothing", never as an error. A non-nil error is
// a fault in the program or its environment and aborts the run.
type Fetcher interface {
	Fetch(ctx context.Context, id int) (*Item, error)
}

// Lister is the top-level listing endpoint: an ordered sequence of up to 500
// story/job IDs. A bad payload here is a retrieval failure, not an
// unavailable item.
type Lister interface {
	TopStories(ctx context.Context) ([]int, error)
}

// VerdictStatus is the outcome of reconciling one root.
type VerdictStatus string

const (
	// StatusMatch means the advertised descendant count equals the computed one.
	StatusMatch VerdictStatus = "match"
	// StatusMismatch means the counts disagree.
	StatusMismatch VerdictStatus = "mismatch"
	// StatusSkipped means there was nothing to check: the root was
	// unavailable or carried no descendant claim.
	StatusSkipped VerdictStatus = "skipped"
)

// Verdict records the reconciliation result for one root. ReportedCount is
// nil when the root made no claim (or could not be fetched).
type Verdict struct {
	RootID        int           `json:"root_id"`
	ReportedCount *int          `json:"reported_count,omitempty"`
	ComputedCount int           `json:"computed_count"`
	Status        VerdictStatus `json:"status"`
}

// Matched reports whether the verdict is a confirmed match. Skipped verdicts
// are neither matches nor mismatches.
func (v Verdict) Matched() bool {
	return v.Status == StatusMatch
}

// Violation is a schema problem on one item: a field that is missing, has
// the wrong shape, or points at the wrong place. Violations are reported per
// item and never stop sibling processing.
type Violation struct {
	ID     int    `json:"id"`
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Detail
}
