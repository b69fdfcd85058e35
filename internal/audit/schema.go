package audit

import (
	"fmt"

	"github.com/creitz/hn-audit/internal/domain"
)

// ValidateRoot checks an item served for a listing entry: the id must be
// present, positive, and echo the requested one, and the kind must be one a
// listing may contain. A nil item produces no violations; absence is API
// unreliability, not a schema problem.
func ValidateRoot(item *domain.Item, requestedID int) []domain.Violation {
	if item == nil {
		return nil
	}

	var violations []domain.Violation
	switch {
	case item.ID <= 0:
		violations = append(violations, domain.Violation{
			ID:     requestedID,
			Field:  "id",
			Detail: "missing or non-positive id",
		})
	case item.ID != requestedID:
		violations = append(violations, domain.Violation{
			ID:     requestedID,
			Field:  "id",
			Detail: fmt.Sprintf("id %d does not echo requested id %d", item.ID, requestedID),
		})
	}

	if !domain.RootKind(item.Type) {
		violations = append(violations, domain.Violation{
			ID:     requestedID,
			Field:  "type",
			Detail: fmt.Sprintf("type %q not allowed at the top level", item.Type),
		})
	}
	return violations
}

// ValidateReply checks a child item against the node that listed it: the id
// must be present and positive, and the parent pointer must refer back to
// parentID.
func ValidateReply(item *domain.Item, parentID int) []domain.Violation {
	if item == nil {
		return nil
	}

	var violations []domain.Violation
	if item.ID <= 0 {
		violations = append(violations, domain.Violation{
			ID:     item.ID,
			Field:  "id",
			Detail: "missing or non-positive id",
		})
	}
	if item.Parent != parentID {
		violations = append(violations, domain.Violation{
			ID:     item.ID,
			Field:  "parent",
			Detail: fmt.Sprintf("parent %d does not match listing node %d", item.Parent, parentID),
		})
	}
	return violations
}
