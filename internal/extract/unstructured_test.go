package extract

import (
	"errors"
	"testing"
)

func TestParseUnstructuredOrders(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []LineFields
	}{
		{
			name: "dash at phrasing",
			text: "Please supply TL-9900X – 10 pcs @ 1,200.",
			want: []LineFields{{VendorPartNo: "TL-9900X", Quantity: 10, UnitPrice: 1200, TotalAmount: 12000}},
		},
		{
			name: "ascii hyphen variant",
			text: "TL-55A - 3 nos @ 450",
			want: []LineFields{{VendorPartNo: "TL-55A", Quantity: 3, UnitPrice: 450, TotalAmount: 1350}},
		},
		{
			name: "quantity first phrasing",
			text: "ship 5 nos of ER123 at 2,500",
			want: []LineFields{{VendorPartNo: "ER123", Quantity: 5, UnitPrice: 2500, TotalAmount: 12500}},
		},
		{
			name: "loose fallback",
			text: "ER77 quantity 12 price 4,500",
			want: []LineFields{{VendorPartNo: "ER77", Quantity: 12, UnitPrice: 4500, TotalAmount: 54000}},
		},
		{
			name: "one record per line",
			text: "TL-1 – 2 @ 300\n4 pcs of ER9 at 150\nno order on this line",
			want: []LineFields{
				{VendorPartNo: "TL-1", Quantity: 2, UnitPrice: 300, TotalAmount: 600},
				{VendorPartNo: "ER9", Quantity: 4, UnitPrice: 150, TotalAmount: 600},
			},
		},
		{
			name: "duplicate lines collapse",
			text: "TL-1 – 2 @ 300\nTL-1 – 2 @ 300",
			want: []LineFields{{VendorPartNo: "TL-1", Quantity: 2, UnitPrice: 300, TotalAmount: 600}},
		},
		{
			name: "zero quantity passes through",
			text: "TL-9 – 0 @ 1,500",
			want: []LineFields{{VendorPartNo: "TL-9", Quantity: 0, UnitPrice: 1500, TotalAmount: 0}},
		},
		{
			name: "nothing recognizable",
			text: "hello,\nplease call me back",
			want: []LineFields{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseUnstructuredOrders(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("len=%d want %d: %+v", len(got), len(tc.want), got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("record %d: got %+v want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestMatchLinePrecedence(t *testing.T) {
	// The dash/at phrasing also fits the loose fallback; only the first
	// matcher in the chain may produce the record.
	fields, err := matchLine("TL-9900X – 10 pcs @ 1,200")
	if err != nil {
		t.Fatal(err)
	}
	if fields.Quantity != 10 || fields.UnitPrice != 1200 {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestMatchLineNoMatch(t *testing.T) {
	_, err := matchLine("regards, accounts team")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("want ErrNoMatch, got %v", err)
	}
}

func TestMatchLineMalformedCapture(t *testing.T) {
	// The separator-only price matches the pattern shape but is not a
	// number; the error kind must say so.
	_, err := matchLine("TL-5X – 2 @ ,,,")
	var malformed *MalformedMatchError
	if !errors.As(err, &malformed) {
		t.Fatalf("want MalformedMatchError, got %v", err)
	}
	if errors.Is(err, ErrNoMatch) {
		t.Fatal("malformed match must not look like a miss")
	}
}

func TestParseUnstructuredOrdersSkipsMalformedLine(t *testing.T) {
	got := ParseUnstructuredOrders("TL-5X – 2 @ ,,,\nTL-1 – 2 @ 300")
	if len(got) != 1 {
		t.Fatalf("len=%d: %+v", len(got), got)
	}
	if got[0].VendorPartNo != "TL-1" {
		t.Fatalf("unexpected survivor: %+v", got[0])
	}
}
