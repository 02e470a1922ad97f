package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pomail/internal/util"
)

// ErrNoMatch reports that a line fits none of the known order phrasings.
// It is distinct from MalformedMatchError so callers and tests can tell
// "nothing there" from "looked like an order but had a bad number".
var ErrNoMatch = errors.New("no line pattern matched")

type MalformedMatchError struct {
	Pattern string
	Capture string
	Err     error
}

func (e *MalformedMatchError) Error() string {
	return fmt.Sprintf("pattern %s: bad capture %q: %v", e.Pattern, e.Capture, e.Err)
}

func (e *MalformedMatchError) Unwrap() error { return e.Err }

// LineFields is the partial record a single line yields. Header fields are
// layered on later by the assembler.
type LineFields struct {
	VendorPartNo string
	Quantity     int
	UnitPrice    int
	TotalAmount  int
}

// LineMatcher recognizes one vendor-order phrasing on a single line.
type LineMatcher interface {
	Name() string
	TryMatch(line string) (LineFields, error)
}

type regexMatcher struct {
	name     string
	re       *regexp.Regexp
	partIdx  int
	qtyIdx   int
	priceIdx int
}

func (m *regexMatcher) Name() string { return m.name }

func (m *regexMatcher) TryMatch(line string) (LineFields, error) {
	groups := m.re.FindStringSubmatch(line)
	if groups == nil {
		return LineFields{}, ErrNoMatch
	}

	qty, err := util.ParseGroupedInt(groups[m.qtyIdx])
	if err != nil {
		return LineFields{}, &MalformedMatchError{Pattern: m.name, Capture: groups[m.qtyIdx], Err: err}
	}
	price, err := util.ParseGroupedInt(groups[m.priceIdx])
	if err != nil {
		return LineFields{}, &MalformedMatchError{Pattern: m.name, Capture: groups[m.priceIdx], Err: err}
	}

	return LineFields{
		VendorPartNo: strings.TrimSpace(groups[m.partIdx]),
		Quantity:     qty,
		UnitPrice:    price,
		TotalAmount:  qty * price,
	}, nil
}

const skuAlternatives = `TL-[A-Z0-9\-]+|ER\d+`

// lineMatchers is the fixed precedence chain tried against every line:
// the dash/at phrasing first, then quantity-first, then the loose fallback.
// First match wins so a line never counts twice under a looser pattern.
var lineMatchers = []LineMatcher{
	&regexMatcher{
		name:     "dash_at",
		re:       regexp.MustCompile(`(?i)(` + skuAlternatives + `)\s*[–-]\s*(\d+)\s*(?:nos|nps|ns|pcs)?\.?\s*@\s*([\d,]+)`),
		partIdx:  1,
		qtyIdx:   2,
		priceIdx: 3,
	},
	&regexMatcher{
		name:     "qty_first",
		re:       regexp.MustCompile(`(?i)(\d+)\s*(?:nos|pcs|units)\s*of\s*(` + skuAlternatives + `)\s*at\s*([\d,]+)`),
		partIdx:  2,
		qtyIdx:   1,
		priceIdx: 3,
	},
	&regexMatcher{
		name:     "loose",
		re:       regexp.MustCompile(`(?i)(` + skuAlternatives + `).*?(\d+).*?([\d,]{3,})`),
		partIdx:  1,
		qtyIdx:   2,
		priceIdx: 3,
	},
}
