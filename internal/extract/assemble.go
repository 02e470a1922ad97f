package extract

import (
	"fmt"

	"pomail/internal"
)

const (
	confidenceFound = 0.95
	confidenceEmpty = 0.20
)

// assembleRecords layers the email-level header fields onto every record.
// Fields a record already carries (the structured path's per-block branch
// and part reference) win for that record.
func assembleRecords(records []internal.OrderRecord, branch, partRef, orderDate *string) []internal.OrderRecord {
	out := make([]internal.OrderRecord, 0, len(records))
	for _, r := range records {
		if r.Branch == nil {
			r.Branch = branch
		}
		if r.PartReference == nil {
			r.PartReference = partRef
		}
		if r.OrderDate == nil {
			r.OrderDate = orderDate
		}
		out = append(out, r)
	}
	return dedupeRecords(out)
}

func dedupeRecords(records []internal.OrderRecord) []internal.OrderRecord {
	seen := map[string]struct{}{}
	out := make([]internal.OrderRecord, 0, len(records))
	for _, r := range records {
		key := fmt.Sprintf("%s|%s|%s|%s|%d|%d|%d|%s",
			deref(r.OrderDate), deref(r.Branch), deref(r.PartReference),
			r.VendorPartNo, r.Quantity, r.UnitPrice, r.TotalAmount, derefInt(r.MaterialValue))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func scoreConfidence(records []internal.OrderRecord) float64 {
	if len(records) > 0 {
		return confidenceFound
	}
	return confidenceEmpty
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
