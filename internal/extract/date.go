package extract

import (
	"strings"
	"time"
)

var receivedLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ResolveOrderDate picks the shared order date for an unstructured response.
// An explicit DD-MM-YYYY token in the body wins; otherwise the received-date
// hint is parsed as an ISO-8601 timestamp (trailing zone marker tolerated);
// as a last resort the hint is cut at its first "T" with no validation.
// Some string always comes back.
func ResolveOrderDate(body, receivedDate string) string {
	if fromText := ExtractOrderDate(body); fromText != nil {
		return *fromText
	}

	hint := strings.TrimSuffix(strings.TrimSpace(receivedDate), "Z")
	for _, layout := range receivedLayouts {
		if parsed, err := time.Parse(layout, hint); err == nil {
			return parsed.Format("2006-01-02")
		}
	}

	return strings.SplitN(receivedDate, "T", 2)[0]
}
