package extract

import (
	"strings"

	"pomail/internal"
	"pomail/internal/util"
)

// blockWidth is the size of one structured entry: a date anchor line plus
// six payload lines (branch, part reference, vendor part no, quantity,
// unit price, material value).
const blockWidth = 7

// ParseStructuredOrders walks text already classified as structured. Lines
// are trimmed and blanks dropped, then a cursor scans for date anchors. A
// well-formed block is consumed whole; anything malformed advances the
// cursor a single line so one bad block never loses the rest of the email.
func ParseStructuredOrders(text string) []internal.OrderRecord {
	lines := splitLines(text)
	out := make([]internal.OrderRecord, 0)

	for i := 0; i < len(lines); {
		if !datePattern.MatchString(lines[i]) {
			i++
			continue
		}

		record, ok := consumeBlock(lines, i)
		if !ok {
			i++
			continue
		}
		out = append(out, record)
		i += blockWidth
	}

	return out
}

// consumeBlock reads the six payload lines after the date anchor at lines[i].
// A repeated table header ("Branch" in the name slot) or a non-digit
// quantity line rejects the block without consuming it.
func consumeBlock(lines []string, i int) (internal.OrderRecord, bool) {
	if i+blockWidth > len(lines) {
		return internal.OrderRecord{}, false
	}

	branch := lines[i+1]
	partRef := lines[i+2]
	vendorPart := lines[i+3]
	qtyLine := lines[i+4]
	priceLine := lines[i+5]
	materialLine := lines[i+6]

	if strings.EqualFold(branch, "branch") {
		return internal.OrderRecord{}, false
	}
	if !util.IsDigits(qtyLine) {
		return internal.OrderRecord{}, false
	}

	qty, err := util.ParseGroupedInt(qtyLine)
	if err != nil {
		return internal.OrderRecord{}, false
	}
	price, err := util.ParseGroupedInt(priceLine)
	if err != nil {
		return internal.OrderRecord{}, false
	}
	material, err := util.ParseGroupedInt(materialLine)
	if err != nil {
		return internal.OrderRecord{}, false
	}

	return internal.OrderRecord{
		Branch:        util.StringPtr(branch),
		PartReference: util.StringPtr(partRef),
		VendorPartNo:  vendorPart,
		Quantity:      qty,
		UnitPrice:     price,
		TotalAmount:   qty * price,
		MaterialValue: util.IntPtr(material),
	}, true
}
