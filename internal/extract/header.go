package extract

import (
	"regexp"
	"strings"
	"time"

	"pomail/internal/util"
)

var (
	branchPattern  = regexp.MustCompile(`(?i)for\s+([A-Za-z\s]+?)\s+branch`)
	partRefPattern = regexp.MustCompile(`(?i)order to\s+([A-Za-z0-9\-]+)`)
	datePattern    = regexp.MustCompile(`\b\d{2}-\d{2}-\d{4}\b`)
)

// ExtractBranch returns the branch name from phrasing like "for Pune branch".
// The capture is letters and spaces only, so names with digits or punctuation
// truncate or miss; first occurrence wins.
func ExtractBranch(text string) *string {
	m := branchPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return util.StringPtr(strings.TrimSpace(m[1]))
}

// ExtractPartReference returns the internal reference code from "order to
// <token>" phrasing, uppercased.
func ExtractPartReference(text string) *string {
	m := partRefPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return util.StringPtr(strings.ToUpper(m[1]))
}

// ExtractOrderDate finds the first DD-MM-YYYY token anywhere in the text and
// returns it in ISO-8601 form, or nil when none parses.
func ExtractOrderDate(text string) *string {
	token := datePattern.FindString(text)
	if token == "" {
		return nil
	}
	parsed, err := time.Parse("02-01-2006", token)
	if err != nil {
		return nil
	}
	return util.StringPtr(parsed.Format("2006-01-02"))
}
