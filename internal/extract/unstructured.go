package extract

import (
	"errors"
	"fmt"
)

// ParseUnstructuredOrders scans free-form prose line by line. Each line is
// offered to the matcher chain in precedence order and the first match wins;
// lines that fit nothing, or that fit a shape but carry an unparseable
// number, are skipped without aborting the scan. Identical field tuples from
// different lines collapse to one entry.
func ParseUnstructuredOrders(text string) []LineFields {
	out := make([]LineFields, 0)
	seen := map[string]struct{}{}

	for _, line := range splitLines(text) {
		fields, err := matchLine(line)
		if err != nil {
			continue
		}
		key := fmt.Sprintf("%s|%d|%d|%d", fields.VendorPartNo, fields.Quantity, fields.UnitPrice, fields.TotalAmount)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, fields)
	}

	return out
}

func matchLine(line string) (LineFields, error) {
	for _, m := range lineMatchers {
		fields, err := m.TryMatch(line)
		if err == nil {
			return fields, nil
		}
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		// Malformed capture: the line looked like this phrasing, so do not
		// let a looser pattern re-read it.
		return LineFields{}, err
	}
	return LineFields{}, ErrNoMatch
}
