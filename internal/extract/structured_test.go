package extract

import "testing"

const structuredBody = `Material value
12-04-2024
Mumbai
XYZ
ER55
5
2,000
10,000
`

func TestParseStructuredOrders(t *testing.T) {
	records := ParseStructuredOrders(structuredBody)
	if len(records) != 1 {
		t.Fatalf("len=%d", len(records))
	}

	r := records[0]
	if r.Branch == nil || *r.Branch != "Mumbai" {
		t.Fatalf("branch=%v", r.Branch)
	}
	if r.PartReference == nil || *r.PartReference != "XYZ" {
		t.Fatalf("partReference=%v", r.PartReference)
	}
	if r.VendorPartNo != "ER55" {
		t.Fatalf("vendorPartNo=%q", r.VendorPartNo)
	}
	if r.Quantity != 5 || r.UnitPrice != 2000 || r.TotalAmount != 10000 {
		t.Fatalf("amounts: %+v", r)
	}
	if r.MaterialValue == nil || *r.MaterialValue != 10000 {
		t.Fatalf("materialValue=%v", r.MaterialValue)
	}
	if r.OrderDate != nil {
		t.Fatalf("structured records carry no order date, got %q", *r.OrderDate)
	}
}

func TestParseStructuredOrdersMultipleBlocks(t *testing.T) {
	body := `Material value
01-01-2024
Pune
ABC
TL-100
2
500
1,000
02-01-2024
Delhi
DEF
ER9
3
400
1,200
`
	records := ParseStructuredOrders(body)
	if len(records) != 2 {
		t.Fatalf("len=%d: %+v", len(records), records)
	}
	if *records[0].Branch != "Pune" || *records[1].Branch != "Delhi" {
		t.Fatalf("branches: %v %v", *records[0].Branch, *records[1].Branch)
	}
}

func TestParseStructuredOrdersSkipsRepeatedHeader(t *testing.T) {
	// A date line followed by the literal table header is a repeated
	// header row, not a data block; the scan steps one line and retries.
	body := `Material value
01-01-2024
Branch
02-01-2024
Mumbai
XYZ
ER55
5
2,000
10,000
`
	records := ParseStructuredOrders(body)
	if len(records) != 1 {
		t.Fatalf("len=%d: %+v", len(records), records)
	}
	if *records[0].Branch != "Mumbai" {
		t.Fatalf("branch=%q", *records[0].Branch)
	}
}

func TestParseStructuredOrdersRecoversFromBadQuantity(t *testing.T) {
	// The first block's quantity is prose, so it is abandoned one line at
	// a time; the later well-formed block must still come out.
	body := `Material value
01-01-2024
Pune
ABC
TL-100
five
500
1,000
02-01-2024
Mumbai
XYZ
ER55
5
2,000
10,000
`
	records := ParseStructuredOrders(body)
	if len(records) != 1 {
		t.Fatalf("len=%d: %+v", len(records), records)
	}
	if *records[0].Branch != "Mumbai" || records[0].Quantity != 5 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestParseStructuredOrdersShortWindow(t *testing.T) {
	records := ParseStructuredOrders("Material value\n01-01-2024\nPune\nABC\n")
	if len(records) != 0 {
		t.Fatalf("len=%d", len(records))
	}
}
