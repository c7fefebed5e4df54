package cart

import (
	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

// Canonical raw-line merge. Both the actions layer and the optimistic store
// derive their persisted payloads from these two functions; hydration is
// strictly a read-side projection over the result.

// MergeLines adds delta units of merchandiseID to the line list. A missing
// line is appended; a line whose quantity drops to zero or below is removed.
// The input is not mutated.
func MergeLines(lines []upstream.CartLine, merchandiseID string, delta int) []upstream.CartLine {
	merged := make([]upstream.CartLine, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if line.MerchandiseID == merchandiseID {
			found = true
			line.Quantity += delta
			if line.Quantity <= 0 {
				continue
			}
		}
		merged = append(merged, line)
	}
	if !found && delta > 0 {
		merged = append(merged, upstream.CartLine{MerchandiseID: merchandiseID, Quantity: delta})
	}
	return merged
}

// SetLineQuantity replaces the quantity of the matching line; a quantity of
// zero or below removes it. A merchandise id with no matching line is a no-op.
// The input is not mutated.
func SetLineQuantity(lines []upstream.CartLine, merchandiseID string, quantity int) []upstream.CartLine {
	updated := make([]upstream.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.MerchandiseID == merchandiseID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		updated = append(updated, line)
	}
	return updated
}
