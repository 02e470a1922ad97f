package extract

import "testing"

func TestExtractBranch(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		miss bool
	}{
		{name: "simple", text: "Order for Pune branch, order to ABC-123.", want: "Pune"},
		{name: "multi word", text: "for Navi Mumbai branch", want: "Navi Mumbai"},
		{name: "case insensitive", text: "FOR PUNE BRANCH", want: "PUNE"},
		{name: "first occurrence wins", text: "for Pune branch and for Delhi branch", want: "Pune"},
		{name: "no phrasing", text: "ship to warehouse 7", miss: true},
		{name: "digits in the name fail the match", text: "for Sector9 branch", miss: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractBranch(tc.text)
			if tc.miss {
				if got != nil {
					t.Fatalf("want nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tc.want {
				t.Fatalf("got %v want %q", got, tc.want)
			}
		})
	}
}

func TestExtractPartReference(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		miss bool
	}{
		{name: "uppercased on return", text: "order to abc-123", want: "ABC-123"},
		{name: "already upper", text: "Order to XYZ", want: "XYZ"},
		{name: "first occurrence wins", text: "order to AAA then order to BBB", want: "AAA"},
		{name: "absent", text: "no reference here", miss: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractPartReference(tc.text)
			if tc.miss {
				if got != nil {
					t.Fatalf("want nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tc.want {
				t.Fatalf("got %v want %q", got, tc.want)
			}
		})
	}
}

func TestExtractOrderDate(t *testing.T) {
	if got := ExtractOrderDate("delivery by 15-03-2024 please"); got == nil || *got != "2024-03-15" {
		t.Fatalf("got %v", got)
	}
	if got := ExtractOrderDate("no date at all"); got != nil {
		t.Fatalf("want nil, got %q", *got)
	}
	// A token that fits the shape but is not a real date parses to nothing.
	if got := ExtractOrderDate("99-99-2024"); got != nil {
		t.Fatalf("want nil, got %q", *got)
	}
}
